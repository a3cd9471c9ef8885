package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/trip-planner/internal/planner"
	"github.com/voyago/trip-planner/internal/providers"
)

func TestRemotePlannerClient_Success(t *testing.T) {
	var gotReq struct {
		Query planner.TripQuery `json:"query"`
		Days  []string          `json:"days"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-itinerary", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		jsonHandler(t, map[string]any{
			"itinerary": []map[string]any{
				{"date": "2025-06-01", "activities": []string{"Arrive and check in"}},
				{"date": "2025-06-02", "activities": []string{"Old town walk"}},
			},
			"estimated_cost": 999.5,
		})(w, r)
	}))
	defer srv.Close()

	tr := newNoRetryTransport()
	defer tr.Close()
	c := providers.NewRemotePlannerClient(tr, srv.URL+"/")

	plan, err := c.GenerateItinerary(context.Background(), planner.TripQuery{
		Origin: "NYC", Destination: "Paris", StartDate: "2025-06-01", EndDate: "2025-06-02",
	}, planner.Snapshot{}, []string{"2025-06-01", "2025-06-02"})
	require.NoError(t, err)

	require.Len(t, plan.Itinerary, 2)
	assert.Equal(t, "Old town walk", plan.Itinerary[1].Activities[0])
	require.NotNil(t, plan.EstimatedCost)
	assert.Equal(t, 999.5, *plan.EstimatedCost)

	assert.Equal(t, "Paris", gotReq.Query.Destination)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, gotReq.Days)
}

func TestRemotePlannerClient_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		jsonHandler(t, map[string]any{
			"itinerary": []map[string]any{{"date": "2025-06-01", "activities": []string{"Arrive"}}},
		})(w, r)
	}))
	defer srv.Close()

	tr := newNoRetryTransport()
	defer tr.Close()
	c := providers.NewRemotePlannerClient(tr, srv.URL)

	plan, err := c.GenerateItinerary(context.Background(), planner.TripQuery{
		Origin: "NYC", Destination: "Paris", StartDate: "2025-06-01", EndDate: "2025-06-01",
	}, planner.Snapshot{}, []string{"2025-06-01"})
	require.NoError(t, err)
	require.Len(t, plan.Itinerary, 1)
	assert.Equal(t, 2, calls)
}

func TestRemotePlannerClient_AllAttemptsFailYieldBookendFallback(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := newNoRetryTransport()
	defer tr.Close()
	c := providers.NewRemotePlannerClient(tr, srv.URL)

	plan, err := c.GenerateItinerary(context.Background(), planner.TripQuery{
		Origin: "NYC", Destination: "Paris", StartDate: "2025-06-01", EndDate: "2025-06-03",
	}, planner.Snapshot{}, []string{"2025-06-01", "2025-06-02", "2025-06-03"})
	require.NoError(t, err, "total failure still yields a degraded plan")

	assert.Equal(t, 3, calls, "three attempts before giving up")
	require.Len(t, plan.Itinerary, 2)
	assert.Equal(t, "2025-06-01", plan.Itinerary[0].Date)
	assert.Equal(t, []string{"Arrive at Paris"}, plan.Itinerary[0].Activities)
	assert.Equal(t, "2025-06-03", plan.Itinerary[1].Date)
	assert.NotEmpty(t, plan.Note)
}
