package planner

import "context"

// FlightSearcher finds flight options for a route and departure date.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOption, error)
}

// FlightQuery carries the flight-search parameters derived from a TripQuery.
type FlightQuery struct {
	Origin            string
	Destination       string
	Date              string
	Adults            int
	CabinClass        string
	PreferredAirlines []string
}

// HotelSearcher finds hotel options for a stay.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, q HotelQuery) ([]HotelOption, error)
}

// HotelQuery carries the hotel-search parameters derived from a TripQuery.
type HotelQuery struct {
	Location          string
	CheckIn           string
	CheckOut          string
	Adults            int
	AccommodationType string
	MinRating         float64
}

// ForecastProvider returns a daily weather forecast for a city.
type ForecastProvider interface {
	Forecast(ctx context.Context, city string) ([]ForecastDay, error)
}

// PlaceSearcher runs a free-text attraction search.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]PlaceRecord, error)
}

// EventSearcher finds events in a city during the travel dates.
type EventSearcher interface {
	SearchEvents(ctx context.Context, city, startDate, endDate string, categories []string) ([]EventRecord, error)
}

// RestaurantSearcher finds restaurants honoring dietary restrictions.
type RestaurantSearcher interface {
	SearchRestaurants(ctx context.Context, city string, cuisines, dietary []string) ([]RestaurantRecord, error)
}

// VisaChecker looks up visa requirements and safety advisories. The two
// lookups are always issued together, so they share one contract.
type VisaChecker interface {
	CheckVisa(ctx context.Context, origin, destination string) (VisaInfo, error)
	SafetyAdvisories(ctx context.Context, destination string) (SafetyInfo, error)
}

// RemoteItinerary is the external AI planning service. Implementations may
// return a minimal degraded itinerary of their own on failure; the planner
// treats an empty itinerary as the signal to build one locally.
type RemoteItinerary interface {
	GenerateItinerary(ctx context.Context, q TripQuery, snapshot Snapshot, days []string) (*RemotePlan, error)
}

// RemotePlan is the remote planning service's response.
type RemotePlan struct {
	Itinerary     []DayPlan `json:"itinerary"`
	EstimatedCost *float64  `json:"estimated_cost,omitempty"`
	Note          string    `json:"note,omitempty"`
}
