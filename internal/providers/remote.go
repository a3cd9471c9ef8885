package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/voyago/trip-planner/internal/planner"
)

const (
	remoteAttempts = 3
	remoteBackoff  = 500 * time.Millisecond
)

// RemotePlannerClient calls an external AI itinerary service. When every
// attempt fails it returns a minimal bookend itinerary of its own; the
// orchestrator only falls back to the heuristic builder when the resulting
// itinerary is empty.
type RemotePlannerClient struct {
	baseURL   string
	transport *Transport
}

// NewRemotePlannerClient constructs a client for the given service base URL.
func NewRemotePlannerClient(t *Transport, baseURL string) *RemotePlannerClient {
	return &RemotePlannerClient{baseURL: strings.TrimRight(baseURL, "/"), transport: t}
}

type remoteRequest struct {
	Query    planner.TripQuery `json:"query"`
	External planner.Snapshot  `json:"external_snapshot"`
	Days     []string          `json:"days"`
}

// GenerateItinerary posts the full planning context to the remote service
// with bounded retries and linear backoff between attempts.
func (c *RemotePlannerClient) GenerateItinerary(ctx context.Context, q planner.TripQuery, snapshot planner.Snapshot, days []string) (*planner.RemotePlan, error) {
	endpoint := c.baseURL + "/generate-itinerary"
	req := remoteRequest{Query: q, External: snapshot, Days: days}

	var lastErr error
	for attempt := 1; attempt <= remoteAttempts; attempt++ {
		var plan planner.RemotePlan
		lastErr = c.transport.postJSON(ctx, endpoint, req, &plan)
		if lastErr == nil {
			return &plan, nil
		}
		slog.Warn("remote itinerary attempt failed", "attempt", attempt, "err", lastErr)

		if attempt < remoteAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(remoteBackoff * time.Duration(attempt)):
			}
		}
	}

	// Degraded internal fallback: bookend the trip so callers still get
	// something shaped like an itinerary.
	return &planner.RemotePlan{
		Itinerary: []planner.DayPlan{
			{Date: q.StartDate, Activities: []string{"Arrive at " + q.Destination}},
			{Date: q.EndDate, Activities: []string{"Departure / buffer day"}},
		},
		Note: fmt.Sprintf("Used fallback plan because planning service unavailable: %v", lastErr),
	}, nil
}
