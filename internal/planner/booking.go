package planner

import (
	"fmt"
	"net/url"
)

// HotelBookingLink points at a booking page for one hotel option.
type HotelBookingLink struct {
	HotelName     string  `json:"hotel_name"`
	PricePerNight float64 `json:"price_per_night"`
	Rating        float64 `json:"rating"`
	BookingURL    string  `json:"booking_url"`
	Provider      string  `json:"provider"`
}

// FlightBookingLink bundles search URLs for one flight option across
// several booking sites; flight vendors rarely expose direct deep links.
type FlightBookingLink struct {
	FlightInfo     string          `json:"flight_info"`
	Price          float64         `json:"price"`
	BookingOptions []BookingOption `json:"booking_options"`
}

// BookingOption is a single provider/URL pair.
type BookingOption struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// PackageDeal is a flight+hotel bundle search link.
type PackageDeal struct {
	Provider    string `json:"provider"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// BookingLinks groups every derived booking pointer for a plan.
type BookingLinks struct {
	Hotels   []HotelBookingLink  `json:"hotels"`
	Flights  []FlightBookingLink `json:"flights"`
	Packages []PackageDeal       `json:"packages"`
}

// buildBookingLinks derives booking URLs for the top hotel and flight
// options. Pure formatting over already-gathered data: no network calls.
func buildBookingLinks(q TripQuery, snap Snapshot) BookingLinks {
	links := BookingLinks{
		Hotels:  []HotelBookingLink{},
		Flights: []FlightBookingLink{},
	}

	hotels := snap.Hotels
	if len(hotels) > 5 {
		hotels = hotels[:5]
	}
	for _, h := range hotels {
		search := fmt.Sprintf(
			"https://www.booking.com/searchresults.html?ss=%s&checkin=%s&checkout=%s&group_adults=%d",
			url.QueryEscape(q.Destination), q.StartDate, q.EndDate, q.Adults,
		)
		links.Hotels = append(links.Hotels, HotelBookingLink{
			HotelName:     h.Name,
			PricePerNight: h.PricePerNight,
			Rating:        h.Rating,
			BookingURL:    search,
			Provider:      "booking.com",
		})
	}

	flights := snap.Flights
	if len(flights) > 3 {
		flights = flights[:3]
	}
	for _, f := range flights {
		links.Flights = append(links.Flights, FlightBookingLink{
			FlightInfo: fmt.Sprintf("%s - %s to %s", f.Airline, q.Origin, q.Destination),
			Price:      f.Price,
			BookingOptions: []BookingOption{
				{
					Provider: "expedia",
					URL: fmt.Sprintf("https://www.expedia.com/Flights-Search?trip=oneway&leg1=from:%s,to:%s,departure:%s",
						url.QueryEscape(q.Origin), url.QueryEscape(q.Destination), q.StartDate),
				},
				{
					Provider: "google_flights",
					URL: fmt.Sprintf("https://www.google.com/flights?hl=en#flt=%s.%s.%s",
						url.QueryEscape(q.Origin), url.QueryEscape(q.Destination), q.StartDate),
				},
				{
					Provider: "kayak",
					URL: fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s",
						url.QueryEscape(q.Origin), url.QueryEscape(q.Destination), q.StartDate),
				},
			},
		})
	}

	links.Packages = []PackageDeal{
		{
			Provider: "expedia_packages",
			URL: fmt.Sprintf("https://www.expedia.com/Hotel-Search?destination=%s&startDate=%s&endDate=%s&rooms=1&adults=%d",
				url.QueryEscape(q.Destination), q.StartDate, q.EndDate, q.Adults),
			Description: "Flight + Hotel packages on Expedia",
		},
		{
			Provider: "booking_flights",
			URL: fmt.Sprintf("https://www.booking.com/flights/?type=ROUNDTRIP&adults=%d&checkin=%s&checkout=%s",
				q.Adults, q.StartDate, q.EndDate),
			Description: "Flight + Accommodation bundles",
		},
	}

	return links
}
