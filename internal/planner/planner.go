package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrInvalidQuery marks malformed top-level input: the only failure class
// that reaches the caller. Everything downstream degrades instead.
var ErrInvalidQuery = errors.New("invalid trip query")

// SnapshotGatherer is the aggregation step the planner depends on,
// satisfied by *Aggregator.
type SnapshotGatherer interface {
	Gather(ctx context.Context, q TripQuery) Snapshot
}

// Planner sequences the end-to-end planning flow: gather, day range,
// weather filter, remote-or-heuristic itinerary, cost estimate, compose.
type Planner struct {
	gatherer SnapshotGatherer
	remote   RemoteItinerary // optional; nil means heuristic-only
	log      *slog.Logger
}

// NewPlanner constructs a Planner. remote may be nil, in which case the
// local heuristic builder is the only itinerary strategy.
func NewPlanner(gatherer SnapshotGatherer, remote RemoteItinerary, log *slog.Logger) *Planner {
	return &Planner{gatherer: gatherer, remote: remote, log: log}
}

// Generate is the single planning entry point. It rejects malformed input
// up front and otherwise always returns a structurally complete TripPlan,
// possibly with empty lists and an absent cost.
func (p *Planner) Generate(ctx context.Context, q TripQuery) (*TripPlan, error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	applyDefaults(&q)

	// The fan-out dominates total latency; everything after it is local
	// except the optional remote itinerary call.
	snap := p.gatherer.Gather(ctx, q)

	days := DayRange(q.StartDate, q.EndDate, q.MaxItineraryDays)
	days = FilterDaysByWeather(days, snap.Forecast, q.AvoidBadWeather)

	itinerary, cost := p.planItinerary(ctx, q, snap, days)

	if cost == nil {
		nights := len(days) - 1
		cost = EstimateCost(snap.Flights, snap.Hotels, nights)
	}

	return &TripPlan{
		Destination:   q.Destination,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
		Adults:        q.Adults,
		Itinerary:     itinerary,
		EstimatedCost: cost,
		Snapshot:      snap,
		BookingLinks:  buildBookingLinks(q, snap),
		Summary:       Summarize(q, itinerary, cost, snap),
	}, nil
}

// planItinerary tries the remote strategy first and falls back to the
// local heuristic. An empty remote itinerary is a designed degradation
// signal, not an error.
func (p *Planner) planItinerary(ctx context.Context, q TripQuery, snap Snapshot, days []string) ([]DayPlan, *float64) {
	if p.remote != nil {
		remote, err := p.remote.GenerateItinerary(ctx, q, snap, days)
		if err != nil {
			p.log.Warn("remote itinerary failed, using heuristic builder", "destination", q.Destination, "err", err)
		} else if remote != nil && len(remote.Itinerary) > 0 {
			return remote.Itinerary, remote.EstimatedCost
		}
	}
	return BuildItinerary(days, snap.Places), nil
}

func validate(q TripQuery) error {
	if q.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidQuery)
	}
	if q.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidQuery)
	}
	if _, err := time.Parse(dayLayout, q.StartDate); err != nil {
		return fmt.Errorf("%w: start_date %q is not a valid date", ErrInvalidQuery, q.StartDate)
	}
	if _, err := time.Parse(dayLayout, q.EndDate); err != nil {
		return fmt.Errorf("%w: end_date %q is not a valid date", ErrInvalidQuery, q.EndDate)
	}
	return nil
}

func applyDefaults(q *TripQuery) {
	if q.Adults <= 0 {
		q.Adults = 1
	}
	if q.CabinClass == "" {
		q.CabinClass = "economy"
	}
	if q.Language == "" {
		q.Language = "en"
	}
}
