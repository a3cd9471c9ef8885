package planner

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

const (
	maxPlaceQueries = 3
	resultsPerQuery = 5
)

// Aggregator fans out to every external data source in parallel and folds
// the results into one Snapshot. A failing source degrades to its empty
// value; no single source failure aborts the others.
type Aggregator struct {
	flights     FlightSearcher
	hotels      HotelSearcher
	forecast    ForecastProvider
	places      PlaceSearcher
	events      EventSearcher
	restaurants RestaurantSearcher
	visa        VisaChecker
}

// NewAggregator constructs an Aggregator over the given provider adapters.
func NewAggregator(
	flights FlightSearcher,
	hotels HotelSearcher,
	forecast ForecastProvider,
	places PlaceSearcher,
	events EventSearcher,
	restaurants RestaurantSearcher,
	visa VisaChecker,
) *Aggregator {
	return &Aggregator{
		flights:     flights,
		hotels:      hotels,
		forecast:    forecast,
		places:      places,
		events:      events,
		restaurants: restaurants,
		visa:        visa,
	}
}

// Gather issues all adapter calls concurrently and waits for the slowest
// one. Every branch writes a disjoint Snapshot field, so completion order
// does not matter. Errors and panics are contained per branch: the field
// keeps its empty default and a warning is logged.
func (a *Aggregator) Gather(ctx context.Context, q TripQuery) Snapshot {
	snap := emptySnapshot()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(guard("flights", func() error {
		flights, err := a.flights.SearchFlights(gCtx, FlightQuery{
			Origin:            q.Origin,
			Destination:       q.Destination,
			Date:              q.StartDate,
			Adults:            q.Adults,
			CabinClass:        q.CabinClass,
			PreferredAirlines: q.PreferredAirlines,
		})
		if err != nil {
			slog.Warn("flight search failed", "origin", q.Origin, "destination", q.Destination, "err", err)
			return nil
		}
		if flights != nil {
			snap.Flights = flights
		}
		return nil
	}))

	g.Go(guard("hotels", func() error {
		hotels, err := a.hotels.SearchHotels(gCtx, HotelQuery{
			Location:          q.Destination,
			CheckIn:           q.StartDate,
			CheckOut:          q.EndDate,
			Adults:            q.Adults,
			AccommodationType: q.AccommodationType,
			MinRating:         q.HotelRating,
		})
		if err != nil {
			slog.Warn("hotel search failed", "destination", q.Destination, "err", err)
			return nil
		}
		if hotels != nil {
			snap.Hotels = hotels
		}
		return nil
	}))

	g.Go(guard("forecast", func() error {
		forecast, err := a.forecast.Forecast(gCtx, q.Destination)
		if err != nil {
			slog.Warn("forecast fetch failed", "destination", q.Destination, "err", err)
			return nil
		}
		if forecast != nil {
			snap.Forecast = forecast
		}
		return nil
	}))

	g.Go(guard("places", func() error {
		snap.Places = a.gatherPlaces(gCtx, q)
		return nil
	}))

	g.Go(guard("events", func() error {
		events, err := a.events.SearchEvents(gCtx, q.Destination, q.StartDate, q.EndDate, q.Activities)
		if err != nil {
			slog.Warn("event search failed", "destination", q.Destination, "err", err)
			return nil
		}
		if events != nil {
			snap.Events = events
		}
		return nil
	}))

	g.Go(guard("restaurants", func() error {
		restaurants, err := a.restaurants.SearchRestaurants(gCtx, q.Destination, q.Activities, q.DietaryRestrictions)
		if err != nil {
			slog.Warn("restaurant search failed", "destination", q.Destination, "err", err)
			return nil
		}
		if restaurants != nil {
			snap.Restaurants = restaurants
		}
		return nil
	}))

	// Visa and safety are always queried together, as one logical unit.
	g.Go(guard("visa-safety", func() error {
		visa, err := a.visa.CheckVisa(gCtx, q.Origin, q.Destination)
		if err != nil {
			slog.Warn("visa check failed", "origin", q.Origin, "destination", q.Destination, "err", err)
		} else {
			snap.Visa = visa
		}

		safety, err := a.visa.SafetyAdvisories(gCtx, q.Destination)
		if err != nil {
			slog.Warn("safety advisories failed", "destination", q.Destination, "err", err)
		} else {
			snap.Safety = safety
		}
		return nil
	}))

	// Branches never return errors; Wait only propagates contained panics.
	if err := g.Wait(); err != nil {
		slog.Error("aggregation finished with contained panic", "err", err)
	}

	return snap
}

// gatherPlaces derives one search query per requested activity, capped to
// the first three distinct queries, harvesting at most five results each
// and deduplicating globally by place name in first-seen order.
func (a *Aggregator) gatherPlaces(ctx context.Context, q TripQuery) []PlaceRecord {
	queries := make([]string, 0, maxPlaceQueries)
	seenQueries := make(map[string]bool)
	for _, act := range q.Activities {
		query := fmt.Sprintf("%s in %s", act, q.Destination)
		if seenQueries[query] {
			continue
		}
		seenQueries[query] = true
		queries = append(queries, query)
		if len(queries) == maxPlaceQueries {
			break
		}
	}
	if len(queries) == 0 {
		queries = append(queries, "things to do in "+q.Destination)
	}

	seen := make(map[string]bool)
	deduped := []PlaceRecord{}
	for _, query := range queries {
		chunk, err := a.places.SearchPlaces(ctx, query, resultsPerQuery)
		if err != nil {
			slog.Warn("place search failed", "query", query, "err", err)
			continue
		}
		if len(chunk) > resultsPerQuery {
			chunk = chunk[:resultsPerQuery]
		}
		for _, p := range chunk {
			if p.Name == "" || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			deduped = append(deduped, p)
		}
	}
	return deduped
}

// guard wraps a fan-out branch so a panic inside one adapter is reported
// instead of taking the process (or the sibling branches) down.
func guard(source string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("source fetch panicked", "source", source, "recover", r)
				err = fmt.Errorf("%s fetch panicked: %v", source, r)
			}
		}()
		return fn()
	}
}
