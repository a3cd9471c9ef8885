package providers

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/voyago/trip-planner/internal/planner"
)

const (
	eventsDefaultURL = "https://app.ticketmaster.com/discovery/v2/events.json"
	maxEvents        = 10
)

// EventClient searches the Ticketmaster discovery API. Without credentials,
// or when the vendor call fails, it degrades to built-in generic
// suggestions instead of an error: event data is nice-to-have.
type EventClient struct {
	apiKey    string
	baseURL   string
	transport *Transport
}

// NewEventClient constructs an EventClient. An empty apiKey is allowed and
// switches the client into suggestions-only mode.
func NewEventClient(t *Transport, apiKey string) *EventClient {
	return &EventClient{apiKey: apiKey, baseURL: eventsDefaultURL, transport: t}
}

// NewEventClientWithURL points the client at a custom base URL (for tests).
func NewEventClientWithURL(t *Transport, baseURL, apiKey string) *EventClient {
	return &EventClient{apiKey: apiKey, baseURL: baseURL, transport: t}
}

type rawEventResponse struct {
	Embedded struct {
		Events []struct {
			Name  string `json:"name"`
			Info  string `json:"info"`
			URL   string `json:"url"`
			Dates struct {
				Start struct {
					LocalDate string `json:"localDate"`
				} `json:"start"`
			} `json:"dates"`
			Embedded struct {
				Venues []struct {
					Name string `json:"name"`
				} `json:"venues"`
			} `json:"_embedded"`
		} `json:"events"`
	} `json:"_embedded"`
}

// SearchEvents returns events in the city during the travel dates, capped
// at ten, falling back to generic suggestions when the vendor yields none.
func (c *EventClient) SearchEvents(ctx context.Context, city, startDate, endDate string, categories []string) ([]planner.EventRecord, error) {
	var events []planner.EventRecord

	if c.apiKey != "" {
		fetched, err := c.searchTicketmaster(ctx, city, startDate, endDate)
		if err == nil {
			events = fetched
		}
	}

	if len(events) == 0 {
		events = suggestedEvents(city, categories)
	}
	if len(events) > maxEvents {
		events = events[:maxEvents]
	}
	return events, nil
}

func (c *EventClient) searchTicketmaster(ctx context.Context, city, startDate, endDate string) ([]planner.EventRecord, error) {
	params := url.Values{
		"city":          {city},
		"startDateTime": {startDate + "T00:00:00Z"},
		"endDateTime":   {endDate + "T23:59:59Z"},
		"apikey":        {c.apiKey},
	}

	var raw rawEventResponse
	if err := c.transport.getJSON(ctx, c.baseURL, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("ticketmaster search in %s: %w", city, err)
	}

	events := make([]planner.EventRecord, 0, len(raw.Embedded.Events))
	for _, e := range raw.Embedded.Events {
		venue := ""
		if len(e.Embedded.Venues) > 0 {
			venue = e.Embedded.Venues[0].Name
		}
		info := e.Info
		if len(info) > 200 {
			info = info[:200]
		}
		events = append(events, planner.EventRecord{
			Name:        e.Name,
			Description: info,
			StartTime:   e.Dates.Start.LocalDate,
			Venue:       venue,
			URL:         e.URL,
			Source:      "ticketmaster",
		})
	}
	return events, nil
}

// suggestedEvents generates generic activity ideas when no vendor data is
// available.
func suggestedEvents(city string, categories []string) []planner.EventRecord {
	events := []planner.EventRecord{
		{Name: "Local Walking Tour in " + city, Description: "Explore the city's highlights", Source: "suggestion"},
		{Name: "Food Market Visit in " + city, Description: "Experience local cuisine", Source: "suggestion"},
		{Name: "Museum Day in " + city, Description: "Visit top museums and galleries", Source: "suggestion"},
	}
	if slices.Contains(categories, "nightlife") {
		events = append(events, planner.EventRecord{Name: "Evening Entertainment in " + city, Description: "Local nightlife scene", Source: "suggestion"})
	}
	if slices.Contains(categories, "music") {
		events = append(events, planner.EventRecord{Name: "Live Music Venues in " + city, Description: "Local music scene", Source: "suggestion"})
	}
	return events
}
