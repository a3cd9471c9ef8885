package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/voyago/trip-planner/internal/planner"
)

const hotelsDefaultURL = "https://hotels4.p.rapidapi.com/properties/list"

// HotelClient searches a RapidAPI hotels-style endpoint.
type HotelClient struct {
	apiKey    string
	apiHost   string
	baseURL   string
	transport *Transport
}

// NewHotelClient constructs a HotelClient against the production host.
func NewHotelClient(t *Transport, apiKey, apiHost string) *HotelClient {
	return &HotelClient{apiKey: apiKey, apiHost: apiHost, baseURL: hotelsDefaultURL, transport: t}
}

// NewHotelClientWithURL points the client at a custom base URL (for tests).
func NewHotelClientWithURL(t *Transport, baseURL, apiKey string) *HotelClient {
	return &HotelClient{apiKey: apiKey, apiHost: "test", baseURL: baseURL, transport: t}
}

type rawHotelResponse struct {
	Results []struct {
		Name          string   `json:"name"`
		PricePerNight float64  `json:"price_per_night"`
		Rating        float64  `json:"rating"`
		Address       string   `json:"address"`
		Amenities     []string `json:"amenities"`
	} `json:"results"`
}

// SearchHotels returns normalized hotel options for the stay.
func (c *HotelClient) SearchHotels(ctx context.Context, q planner.HotelQuery) ([]planner.HotelOption, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("hotel search: %w", ErrMissingCredentials)
	}

	params := url.Values{
		"destination": {q.Location},
		"checkIn":     {q.CheckIn},
		"checkOut":    {q.CheckOut},
		"adults1":     {fmt.Sprint(q.Adults)},
		"pageSize":    {"10"},
	}
	if q.AccommodationType != "" {
		params.Set("accommodationType", q.AccommodationType)
	}
	if q.MinRating > 0 {
		params.Set("minStarRating", fmt.Sprint(q.MinRating))
	}

	headers := http.Header{
		"X-RapidAPI-Key":  {c.apiKey},
		"X-RapidAPI-Host": {c.apiHost},
	}

	var raw rawHotelResponse
	if err := c.transport.getJSON(ctx, c.baseURL, params, headers, &raw); err != nil {
		return nil, fmt.Errorf("hotel search in %s: %w", q.Location, err)
	}

	hotels := make([]planner.HotelOption, 0, len(raw.Results))
	for _, h := range raw.Results {
		hotels = append(hotels, planner.HotelOption{
			Name:          h.Name,
			PricePerNight: h.PricePerNight,
			Rating:        h.Rating,
			Address:       h.Address,
			Amenities:     h.Amenities,
		})
	}
	return hotels, nil
}
