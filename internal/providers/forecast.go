package providers

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/voyago/trip-planner/internal/planner"
)

const forecastDefaultURL = "https://api.openweathermap.org/data/2.5/forecast"

// ForecastClient fetches the OpenWeatherMap 5-day / 3-hour forecast and
// collapses it into daily summaries.
type ForecastClient struct {
	apiKey    string
	baseURL   string
	transport *Transport
}

// NewForecastClient constructs a ForecastClient with the given API key.
func NewForecastClient(t *Transport, apiKey string) *ForecastClient {
	return &ForecastClient{apiKey: apiKey, baseURL: forecastDefaultURL, transport: t}
}

// NewForecastClientWithURL points the client at a custom base URL (for tests).
func NewForecastClientWithURL(t *Transport, baseURL, apiKey string) *ForecastClient {
	return &ForecastClient{apiKey: apiKey, baseURL: baseURL, transport: t}
}

type owmForecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast returns one entry per calendar day with min/max temperature and
// the day's most frequent weather description.
func (c *ForecastClient) Forecast(ctx context.Context, city string) ([]planner.ForecastDay, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("forecast: %w", ErrMissingCredentials)
	}

	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	var raw owmForecastResponse
	if err := c.transport.getJSON(ctx, c.baseURL, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("forecast for %s: %w", city, err)
	}

	type bucket struct {
		temps []float64
		descs map[string]int
	}
	daily := make(map[string]*bucket)
	for _, entry := range raw.List {
		date, _, found := strings.Cut(entry.DtTxt, " ")
		if !found || date == "" {
			continue
		}
		b := daily[date]
		if b == nil {
			b = &bucket{descs: make(map[string]int)}
			daily[date] = b
		}
		b.temps = append(b.temps, entry.Main.Temp)
		if len(entry.Weather) > 0 {
			b.descs[entry.Weather[0].Description]++
		}
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]planner.ForecastDay, 0, len(dates))
	for _, d := range dates {
		b := daily[d]
		day := planner.ForecastDay{Date: d}
		for i, t := range b.temps {
			if i == 0 || t < day.TempMin {
				day.TempMin = t
			}
			if i == 0 || t > day.TempMax {
				day.TempMax = t
			}
		}
		best := 0
		for desc, n := range b.descs {
			if n > best || (n == best && day.Description == "") {
				best = n
				day.Description = desc
			}
		}
		days = append(days, day)
	}
	return days, nil
}
