package planner

import "strings"

// badWeatherKeywords flag a forecast day as one to plan around.
var badWeatherKeywords = []string{"rain", "storm", "snow", "thunder"}

// FilterDaysByWeather removes days whose forecast description mentions bad
// weather. When avoid is false or there is no forecast the input is returned
// unchanged. If filtering would remove every day, the original sequence is
// returned instead: the planner must never produce a zero-day itinerary
// because of weather. That safety net is mandatory behavior, not a bug.
func FilterDaysByWeather(days []string, forecast []ForecastDay, avoid bool) []string {
	if !avoid || len(forecast) == 0 {
		return days
	}

	badDates := make(map[string]bool)
	for _, f := range forecast {
		if f.Date == "" {
			continue
		}
		desc := strings.ToLower(f.Description)
		for _, kw := range badWeatherKeywords {
			if strings.Contains(desc, kw) {
				badDates[f.Date] = true
				break
			}
		}
	}

	kept := make([]string, 0, len(days))
	for _, d := range days {
		if !badDates[d] {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return days
	}
	return kept
}
