package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/voyago/trip-planner/internal/api"
	"github.com/voyago/trip-planner/internal/cache"
	"github.com/voyago/trip-planner/internal/planner"
	"github.com/voyago/trip-planner/internal/providers"
	"github.com/voyago/trip-planner/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	databaseURL := mustEnv("DATABASE_URL")
	redisURL := mustEnv("REDIS_URL")
	bearerToken := mustEnv("BEARER_TOKEN")
	port := getEnv("PORT", "8080")

	flightsKey := os.Getenv("FLIGHTS_API_KEY")
	flightsHost := getEnv("FLIGHTS_API_HOST", "skyscanner44.p.rapidapi.com")
	hotelsKey := os.Getenv("HOTELS_API_KEY")
	hotelsHost := getEnv("HOTELS_API_HOST", "hotels4.p.rapidapi.com")
	weatherKey := os.Getenv("WEATHER_API_KEY")
	placesKey := os.Getenv("GOOGLE_PLACES_API_KEY")
	eventsKey := os.Getenv("TICKETMASTER_API_KEY")
	plannerURL := os.Getenv("PLANNER_SERVICE_URL")

	ctx := context.Background()

	// Connect to PostgreSQL and apply migrations.
	pool, err := storage.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := storage.RunMigrations(ctx, pool, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("migrations applied")

	// Connect to Redis.
	redisClient, err := cache.Connect(ctx, redisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	// One outbound pool for every provider adapter, torn down at shutdown.
	transport := providers.NewTransport()
	defer transport.Close()

	aggregator := planner.NewAggregator(
		providers.NewFlightClient(transport, flightsKey, flightsHost),
		providers.NewHotelClient(transport, hotelsKey, hotelsHost),
		providers.NewForecastClient(transport, weatherKey),
		providers.NewPlaceClient(transport, placesKey),
		providers.NewEventClient(transport, eventsKey),
		providers.NewRestaurantClient(transport, placesKey),
		providers.NewVisaClient(transport),
	)

	// The remote planning service is optional; without it the heuristic
	// builder is the only itinerary strategy.
	var remote planner.RemoteItinerary
	if plannerURL != "" {
		remote = providers.NewRemotePlannerClient(transport, plannerURL)
	}

	tripPlanner := planner.NewPlanner(aggregator, remote, log)

	// Wire dependencies.
	repo := storage.NewRepository(pool)
	planCache := cache.NewCache(redisClient)
	handlers := api.NewHandlers(tripPlanner, repo, planCache, log)

	dbPinger := &pgxPoolPinger{pool: pool}
	redisPinger := &redisPingerAdapter{client: redisClient}

	router := api.NewRouter(handlers, bearerToken, dbPinger, redisPinger, log)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// pgxPoolPinger adapts pgxpool.Pool to the api health-check interface.
type pgxPoolPinger struct {
	pool interface {
		Ping(ctx context.Context) error
	}
}

func (p *pgxPoolPinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// redisPingerAdapter adapts redis.Client to the api health-check interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
