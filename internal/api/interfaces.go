package api

import (
	"context"

	"github.com/voyago/trip-planner/internal/cache"
	"github.com/voyago/trip-planner/internal/planner"
	"github.com/voyago/trip-planner/internal/storage"
)

// TripPlanner is the planning entry point needed by handlers.
type TripPlanner interface {
	Generate(ctx context.Context, q planner.TripQuery) (*planner.TripPlan, error)
}

// TripRepo defines the storage operations needed by handlers.
type TripRepo interface {
	SaveTrip(ctx context.Context, id string, plan planner.TripPlan) error
	GetTrip(ctx context.Context, id string) (*storage.StoredTrip, error)
}

// PlanCache defines the cache operations needed by handlers.
type PlanCache interface {
	Get(ctx context.Context, q planner.TripQuery) (*cache.CachedPlan, error)
	Set(ctx context.Context, q planner.TripQuery, cached *cache.CachedPlan) error
}
