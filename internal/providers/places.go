package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/voyago/trip-planner/internal/planner"
)

const placesDefaultURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"

// PlaceClient runs Google Places text searches for attractions.
type PlaceClient struct {
	apiKey    string
	baseURL   string
	transport *Transport
}

// NewPlaceClient constructs a PlaceClient with the given API key.
func NewPlaceClient(t *Transport, apiKey string) *PlaceClient {
	return &PlaceClient{apiKey: apiKey, baseURL: placesDefaultURL, transport: t}
}

// NewPlaceClientWithURL points the client at a custom base URL (for tests).
func NewPlaceClientWithURL(t *Transport, baseURL, apiKey string) *PlaceClient {
	return &PlaceClient{apiKey: apiKey, baseURL: baseURL, transport: t}
}

type rawPlaceResponse struct {
	Results []struct {
		Name             string   `json:"name"`
		Rating           float64  `json:"rating"`
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
	} `json:"results"`
}

// SearchPlaces returns up to limit normalized places for the free-text query.
func (c *PlaceClient) SearchPlaces(ctx context.Context, query string, limit int) ([]planner.PlaceRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("place search: %w", ErrMissingCredentials)
	}

	params := url.Values{
		"query": {query},
		"key":   {c.apiKey},
	}

	var raw rawPlaceResponse
	if err := c.transport.getJSON(ctx, c.baseURL, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("place search %q: %w", query, err)
	}

	results := raw.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	places := make([]planner.PlaceRecord, 0, len(results))
	for _, p := range results {
		places = append(places, planner.PlaceRecord{
			Name:     p.Name,
			Category: strings.Join(p.Types, ", "),
			Rating:   p.Rating,
			Address:  p.FormattedAddress,
		})
	}
	return places, nil
}
