package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
)

// NewRouter builds the router with all routes configured. The health
// endpoint is unauthenticated; trip routes require bearer auth. Rate
// limiting is global: 60 requests per minute per IP.
func NewRouter(handlers *Handlers, token string, db dbPinger, redisClient redisPinger, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(db, redisClient, log))

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(token))
		r.Post("/api/v1/trips/plan", handlers.PlanTrip)
		r.Get("/api/v1/trips/{id}", handlers.GetTrip)
		r.Get("/api/v1/trips/{id}/summary", handlers.GetTripSummary)
	})

	return cors.Default().Handler(r)
}
