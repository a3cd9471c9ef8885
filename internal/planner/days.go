package planner

import "time"

const dayLayout = "2006-01-02"

// DayRange returns the calendar days from start to end inclusive, ascending,
// truncated at limit when limit > 0. If either bound fails to parse the
// function fails soft and returns just the raw start value, so the result is
// never empty for any start input.
func DayRange(start, end string, limit int) []string {
	from, err := time.Parse(dayLayout, start)
	if err != nil {
		return []string{start}
	}
	to, err := time.Parse(dayLayout, end)
	if err != nil {
		return []string{start}
	}

	var days []string
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur.Format(dayLayout))
		if limit > 0 && len(days) >= limit {
			break
		}
	}
	if len(days) == 0 {
		// end before start
		return []string{start}
	}
	return days
}
