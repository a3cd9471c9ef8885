package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/trip-planner/internal/cache"
	"github.com/voyago/trip-planner/internal/planner"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewCache(client), mr
}

func testQuery() planner.TripQuery {
	return planner.TripQuery{
		Origin:      "NYC",
		Destination: "Paris",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
		Adults:      2,
	}
}

func testPlan() *cache.CachedPlan {
	cost := 550.0
	return &cache.CachedPlan{
		TripID: "2f6e0ad0-9e3b-4d55-9c43-0f6f9f6f9f6f",
		Plan: planner.TripPlan{
			Destination:   "Paris",
			StartDate:     "2025-06-01",
			EndDate:       "2025-06-03",
			Adults:        2,
			EstimatedCost: &cost,
			Itinerary: []planner.DayPlan{
				{Date: "2025-06-01", Activities: []string{"Visit Louvre"}},
			},
		},
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testQuery(), testPlan()))

	got, err := c.Get(ctx, testQuery())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2f6e0ad0-9e3b-4d55-9c43-0f6f9f6f9f6f", got.TripID)
	assert.Equal(t, "Paris", got.Plan.Destination)
	require.NotNil(t, got.Plan.EstimatedCost)
	assert.Equal(t, 550.0, *got.Plan.EstimatedCost)
}

func TestCache_MissReturnsNilNil(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_EntryExpiresAfterTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testQuery(), testPlan()))
	mr.FastForward(time.Hour + time.Second)

	got, err := c.Get(ctx, testQuery())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_KeyIgnoresOriginDestinationCasing(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testQuery(), testPlan()))

	q := testQuery()
	q.Origin = "nyc"
	q.Destination = "PARIS"
	got, err := c.Get(ctx, q)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Paris", got.Plan.Destination)
}

func TestCache_DistinctQueriesGetDistinctEntries(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testQuery(), testPlan()))

	q := testQuery()
	q.EndDate = "2025-06-05"
	got, err := c.Get(ctx, q)
	require.NoError(t, err)
	assert.Nil(t, got, "different dates must not share an entry")
}

func TestCache_SetNilIsNoOp(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testQuery(), nil))

	got, err := c.Get(ctx, testQuery())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testQuery(), testPlan()))
	require.NoError(t, c.Delete(ctx, testQuery()))

	got, err := c.Get(ctx, testQuery())
	require.NoError(t, err)
	assert.Nil(t, got)
}
