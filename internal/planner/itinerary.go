package planner

const activitiesPerDay = 3

// BuildItinerary greedily assigns discovered places to days, in discovery
// order, three per day. The place cursor is global across days: day two
// continues where day one stopped. A place without a name still consumes
// one of the day's three draws but produces no activity, and running out of
// places just leaves later days with fewer (or zero) activities. Output is
// deterministic and always has one entry per input day.
func BuildItinerary(days []string, places []PlaceRecord) []DayPlan {
	itinerary := make([]DayPlan, 0, len(days))

	idx := 0
	for _, d := range days {
		activities := []string{}
		for draw := 0; draw < activitiesPerDay && idx < len(places); draw++ {
			if name := places[idx].Name; name != "" {
				activities = append(activities, "Visit "+name)
			}
			idx++
		}
		itinerary = append(itinerary, DayPlan{Date: d, Activities: activities})
	}

	return itinerary
}
