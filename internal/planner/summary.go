package planner

import "fmt"

// TripSummary is a compact derived view of a TripPlan, suitable for list
// pages and exports.
type TripSummary struct {
	Destination      string   `json:"destination"`
	Dates            string   `json:"dates"`
	Travelers        int      `json:"travelers"`
	Days             int      `json:"days"`
	EstimatedCost    *float64 `json:"estimated_cost,omitempty"`
	FlightsFound     int      `json:"flights_found"`
	HotelsFound      int      `json:"hotels_found"`
	RestaurantsFound int      `json:"restaurants_found"`
	EventsFound      int      `json:"events_found"`
	PlacesFound      int      `json:"places_found"`
}

// Summarize derives the summary view over an already-computed plan.
func Summarize(q TripQuery, itinerary []DayPlan, cost *float64, snap Snapshot) TripSummary {
	return TripSummary{
		Destination:      q.Destination,
		Dates:            fmt.Sprintf("%s to %s", q.StartDate, q.EndDate),
		Travelers:        q.Adults + q.Children,
		Days:             len(itinerary),
		EstimatedCost:    cost,
		FlightsFound:     len(snap.Flights),
		HotelsFound:      len(snap.Hotels),
		RestaurantsFound: len(snap.Restaurants),
		EventsFound:      len(snap.Events),
		PlacesFound:      len(snap.Places),
	}
}
