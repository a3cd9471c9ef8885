package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/voyago/trip-planner/internal/cache"
	"github.com/voyago/trip-planner/internal/planner"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	planner TripPlanner
	repo    TripRepo
	cache   PlanCache
	log     *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(p TripPlanner, repo TripRepo, planCache PlanCache, log *slog.Logger) *Handlers {
	return &Handlers{
		planner: p,
		repo:    repo,
		cache:   planCache,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// planResponse is the POST /plan payload returned to callers.
type planResponse struct {
	TripID string           `json:"trip_id"`
	Plan   planner.TripPlan `json:"plan"`
}

// PlanTrip handles POST /api/v1/trips/plan.
// Cache hit → return the previously generated plan. Miss → plan, store,
// cache, return. Storage and cache failures degrade to log entries; the
// caller still gets the plan.
func (h *Handlers) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var q planner.TripQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	cached, err := h.cache.Get(r.Context(), q)
	if err != nil {
		h.log.Error("plan cache get failed", "destination", q.Destination, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, planResponse{TripID: cached.TripID, Plan: cached.Plan})
		return
	}

	plan, err := h.planner.Generate(r.Context(), q)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidQuery) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.log.Error("planning failed", "destination", q.Destination, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	tripID := uuid.NewString()
	if err := h.repo.SaveTrip(r.Context(), tripID, *plan); err != nil {
		h.log.Error("trip save failed", "trip_id", tripID, "err", err)
	}
	if err := h.cache.Set(r.Context(), q, &cache.CachedPlan{TripID: tripID, Plan: *plan}); err != nil {
		h.log.Warn("plan cache set failed", "trip_id", tripID, "err", err)
	}

	writeJSON(w, http.StatusOK, planResponse{TripID: tripID, Plan: *plan})
}

// GetTrip handles GET /api/v1/trips/{id}.
func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trip, err := h.repo.GetTrip(r.Context(), id)
	if err != nil {
		h.log.Error("trip lookup failed", "trip_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if trip == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "trip not found"})
		return
	}

	writeJSON(w, http.StatusOK, planResponse{TripID: trip.ID, Plan: trip.Plan})
}

// GetTripSummary handles GET /api/v1/trips/{id}/summary.
func (h *Handlers) GetTripSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trip, err := h.repo.GetTrip(r.Context(), id)
	if err != nil {
		h.log.Error("trip lookup failed", "trip_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if trip == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "trip not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trip_id": trip.ID,
		"summary": trip.Plan.Summary,
	})
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis
// connectivity; 200 when both answer, 503 otherwise.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
