package planner

// TripQuery is the immutable input to one planning run.
type TripQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD

	Budget   *float64 `json:"budget,omitempty"`
	Adults   int      `json:"adults"`
	Children int      `json:"children"`

	AccommodationType   string   `json:"accommodation_type,omitempty"`
	HotelRating         float64  `json:"hotel_rating,omitempty"`
	PreferredAirlines   []string `json:"preferred_airlines,omitempty"`
	CabinClass          string   `json:"cabin_class,omitempty"`
	Activities          []string `json:"activities,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`

	AvoidBadWeather  bool   `json:"avoid_bad_weather,omitempty"`
	MaxItineraryDays int    `json:"max_itinerary_days,omitempty"`
	Language         string `json:"language,omitempty"`
	DetailLevel      string `json:"detail_level,omitempty"`
}

// FlightOption is a normalized flight search result.
type FlightOption struct {
	Airline       string  `json:"airline"`
	Price         float64 `json:"price"`
	DepartureTime string  `json:"departure_time,omitempty"`
	ArrivalTime   string  `json:"arrival_time,omitempty"`
	Stops         int     `json:"stops"`
	Duration      string  `json:"duration,omitempty"`
}

// HotelOption is a normalized hotel search result.
type HotelOption struct {
	Name          string   `json:"name"`
	PricePerNight float64  `json:"price_per_night"`
	Rating        float64  `json:"rating"`
	Address       string   `json:"address,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
}

// ForecastDay is one day of a weather forecast. The description is free
// text; day filtering matches keywords against it.
type ForecastDay struct {
	Date        string  `json:"date"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Description string  `json:"description"`
}

// PlaceRecord is a discovered attraction. Name doubles as the dedup key:
// two places with the same name are the same place regardless of source.
type PlaceRecord struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Address  string  `json:"address,omitempty"`
}

// EventRecord is a normalized event during the travel dates.
type EventRecord struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	Venue       string `json:"venue,omitempty"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source,omitempty"`
}

// RestaurantRecord is a normalized restaurant recommendation.
type RestaurantRecord struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	PriceLevel string  `json:"price_level,omitempty"`
	Cuisine    string  `json:"cuisine,omitempty"`
	Address    string  `json:"address,omitempty"`
	Source     string  `json:"source,omitempty"`
}

// VisaInfo holds visa requirements between origin and destination.
type VisaInfo struct {
	Required     string   `json:"visa_required,omitempty"` // "yes", "no", "unknown"
	Type         string   `json:"visa_type,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Note         string   `json:"note,omitempty"`
	Source       string   `json:"source,omitempty"`
}

// SafetyInfo holds travel safety advisories for the destination.
type SafetyInfo struct {
	Level      string   `json:"safety_level,omitempty"`
	Advisories []string `json:"advisories,omitempty"`
	Source     string   `json:"source,omitempty"`
}

// Snapshot is the complete set of externally gathered data for one
// planning run. Every field defaults to an empty value when its source
// fails, so a Snapshot is always structurally complete.
type Snapshot struct {
	Flights     []FlightOption     `json:"flights"`
	Hotels      []HotelOption      `json:"hotels"`
	Forecast    []ForecastDay      `json:"forecast"`
	Places      []PlaceRecord      `json:"places"`
	Events      []EventRecord      `json:"events"`
	Restaurants []RestaurantRecord `json:"restaurants"`
	Visa        VisaInfo           `json:"visa_info"`
	Safety      SafetyInfo         `json:"safety_info"`
}

// emptySnapshot returns a Snapshot with all sequence fields allocated.
func emptySnapshot() Snapshot {
	return Snapshot{
		Flights:     []FlightOption{},
		Hotels:      []HotelOption{},
		Forecast:    []ForecastDay{},
		Places:      []PlaceRecord{},
		Events:      []EventRecord{},
		Restaurants: []RestaurantRecord{},
	}
}

// DayPlan is one calendar day of the itinerary.
type DayPlan struct {
	Date       string   `json:"date"`
	Activities []string `json:"activities"`
}

// TripPlan is the aggregate planning result handed back to the caller.
// The orchestrator keeps no reference to it after returning.
type TripPlan struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Adults      int    `json:"adults"`

	Itinerary     []DayPlan `json:"itinerary"`
	EstimatedCost *float64  `json:"estimated_cost,omitempty"`

	Snapshot

	BookingLinks BookingLinks `json:"booking_links"`
	Summary      TripSummary  `json:"summary"`
}
