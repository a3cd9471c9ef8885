package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/voyago/trip-planner/internal/planner"
)

const maxRestaurants = 15

// RestaurantClient searches Google Places for restaurants matching cuisine
// preferences and dietary restrictions.
type RestaurantClient struct {
	apiKey    string
	baseURL   string
	transport *Transport
}

// NewRestaurantClient constructs a RestaurantClient with the given API key.
func NewRestaurantClient(t *Transport, apiKey string) *RestaurantClient {
	return &RestaurantClient{apiKey: apiKey, baseURL: placesDefaultURL, transport: t}
}

// NewRestaurantClientWithURL points the client at a custom base URL (for tests).
func NewRestaurantClientWithURL(t *Transport, baseURL, apiKey string) *RestaurantClient {
	return &RestaurantClient{apiKey: apiKey, baseURL: baseURL, transport: t}
}

type rawRestaurantResponse struct {
	Results []struct {
		Name             string   `json:"name"`
		Rating           float64  `json:"rating"`
		PriceLevel       int      `json:"price_level"`
		Types            []string `json:"types"`
		FormattedAddress string   `json:"formatted_address"`
	} `json:"results"`
}

var priceLevels = map[int]string{0: "Free", 1: "$", 2: "$$", 3: "$$$", 4: "$$$$"}

// SearchRestaurants returns deduplicated restaurant recommendations for the
// city, capped at fifteen. Cuisine preferences and dietary restrictions are
// folded into the search query.
func (c *RestaurantClient) SearchRestaurants(ctx context.Context, city string, cuisines, dietary []string) ([]planner.RestaurantRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("restaurant search: %w", ErrMissingCredentials)
	}

	query := "restaurants in " + city
	if len(cuisines) > 0 {
		query += " " + strings.Join(cuisines, " ")
	}
	if len(dietary) > 0 {
		query += " " + strings.Join(dietary, " ")
	}

	params := url.Values{
		"query": {query},
		"type":  {"restaurant"},
		"key":   {c.apiKey},
	}

	var raw rawRestaurantResponse
	if err := c.transport.getJSON(ctx, c.baseURL, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("restaurant search in %s: %w", city, err)
	}

	seen := make(map[string]bool)
	restaurants := make([]planner.RestaurantRecord, 0, len(raw.Results))
	for _, r := range raw.Results {
		key := strings.ToLower(r.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		level, ok := priceLevels[r.PriceLevel]
		if !ok {
			level = "Unknown"
		}
		restaurants = append(restaurants, planner.RestaurantRecord{
			Name:       r.Name,
			Rating:     r.Rating,
			PriceLevel: level,
			Cuisine:    strings.Join(r.Types, ", "),
			Address:    r.FormattedAddress,
			Source:     "google_places",
		})
		if len(restaurants) == maxRestaurants {
			break
		}
	}
	return restaurants, nil
}
