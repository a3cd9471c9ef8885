package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyago/trip-planner/internal/planner"
)

const defaultTTL = time.Hour

// CachedPlan is the cache envelope: the stored trip id plus the plan, so a
// repeated identical query returns the same trip.
type CachedPlan struct {
	TripID string           `json:"trip_id"`
	Plan   planner.TripPlan `json:"plan"`
}

// Cache keeps generated trip plans in Redis keyed by a digest of the
// normalized query, with a 1-hour TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with the default TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// key derives a deterministic Redis key from the query. Origin and
// destination are folded to lower case so casing differences still hit.
func key(q planner.TripQuery) string {
	q.Origin = strings.ToLower(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToLower(strings.TrimSpace(q.Destination))

	b, err := json.Marshal(q)
	if err != nil {
		// Marshaling a TripQuery cannot realistically fail; fall back to a
		// coarse key rather than skipping the cache entirely.
		return "tripplan:" + q.Origin + ":" + q.Destination + ":" + q.StartDate + ":" + q.EndDate
	}
	sum := sha256.Sum256(b)
	return "tripplan:" + hex.EncodeToString(sum[:])
}

// Get retrieves a cached plan for the query.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, q planner.TripQuery) (*CachedPlan, error) {
	val, err := c.client.Get(ctx, key(q)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for %s: %w", q.Destination, err)
	}

	var cached CachedPlan
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, fmt.Errorf("unmarshaling cached plan for %s: %w", q.Destination, err)
	}
	return &cached, nil
}

// Set stores a plan for the query with the configured TTL.
func (c *Cache) Set(ctx context.Context, q planner.TripQuery, cached *CachedPlan) error {
	if cached == nil {
		return nil
	}

	b, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshaling plan for %s: %w", q.Destination, err)
	}

	if err := c.client.Set(ctx, key(q), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for %s: %w", q.Destination, err)
	}
	return nil
}

// Delete removes the cached plan for the query.
func (c *Cache) Delete(ctx context.Context, q planner.TripQuery) error {
	if err := c.client.Del(ctx, key(q)).Err(); err != nil {
		return fmt.Errorf("cache delete for %s: %w", q.Destination, err)
	}
	return nil
}
