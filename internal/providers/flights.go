package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/voyago/trip-planner/internal/planner"
)

// ErrMissingCredentials is returned by adapters whose vendor requires an
// API key that was not configured.
var ErrMissingCredentials = errors.New("missing provider credentials")

const flightsDefaultURL = "https://skyscanner44.p.rapidapi.com/search"

// FlightClient searches a RapidAPI Skyscanner-style flight endpoint.
type FlightClient struct {
	apiKey    string
	apiHost   string
	baseURL   string
	transport *Transport
}

// NewFlightClient constructs a FlightClient against the production host.
func NewFlightClient(t *Transport, apiKey, apiHost string) *FlightClient {
	return &FlightClient{apiKey: apiKey, apiHost: apiHost, baseURL: flightsDefaultURL, transport: t}
}

// NewFlightClientWithURL points the client at a custom base URL (for tests).
func NewFlightClientWithURL(t *Transport, baseURL, apiKey string) *FlightClient {
	return &FlightClient{apiKey: apiKey, apiHost: "test", baseURL: baseURL, transport: t}
}

type rawFlightResponse struct {
	Flights []struct {
		Airline       string  `json:"airline"`
		Price         float64 `json:"price"`
		DepartureTime string  `json:"departure_time"`
		ArrivalTime   string  `json:"arrival_time"`
		Stops         int     `json:"stops"`
		Duration      string  `json:"duration"`
	} `json:"flights"`
}

// SearchFlights returns normalized flight options for the route.
func (c *FlightClient) SearchFlights(ctx context.Context, q planner.FlightQuery) ([]planner.FlightOption, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("flight search: %w", ErrMissingCredentials)
	}

	params := url.Values{
		"origin":        {q.Origin},
		"destination":   {q.Destination},
		"departureDate": {q.Date},
		"adults":        {fmt.Sprint(q.Adults)},
		"cabinClass":    {q.CabinClass},
		"currency":      {"USD"},
	}
	if len(q.PreferredAirlines) > 0 {
		params.Set("carriers", strings.Join(q.PreferredAirlines, ","))
	}

	headers := http.Header{
		"X-RapidAPI-Key":  {c.apiKey},
		"X-RapidAPI-Host": {c.apiHost},
	}

	var raw rawFlightResponse
	if err := c.transport.getJSON(ctx, c.baseURL, params, headers, &raw); err != nil {
		return nil, fmt.Errorf("flight search %s-%s: %w", q.Origin, q.Destination, err)
	}

	flights := make([]planner.FlightOption, 0, len(raw.Flights))
	for _, f := range raw.Flights {
		flights = append(flights, planner.FlightOption{
			Airline:       f.Airline,
			Price:         f.Price,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Stops:         f.Stops,
			Duration:      f.Duration,
		})
	}
	return flights, nil
}
