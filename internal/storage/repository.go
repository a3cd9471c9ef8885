package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyago/trip-planner/internal/planner"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository, so
// tests can inject a mock.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StoredTrip is a persisted trip plan.
type StoredTrip struct {
	ID          string
	Destination string
	StartDate   string
	EndDate     string
	Plan        planner.TripPlan
	CreatedAt   time.Time
}

// Repository provides database access for trip records.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// SaveTrip persists a generated plan under the given id. The plan itself is
// stored as JSONB; destination and dates are lifted into columns for lookup.
func (r *Repository) SaveTrip(ctx context.Context, id string, plan planner.TripPlan) error {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshaling plan for trip %s: %w", id, err)
	}

	const q = `
		INSERT INTO trips (id, destination, start_date, end_date, plan, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE
		SET destination = EXCLUDED.destination,
		    start_date  = EXCLUDED.start_date,
		    end_date    = EXCLUDED.end_date,
		    plan        = EXCLUDED.plan
	`

	if _, err := r.q.Exec(ctx, q, id, plan.Destination, plan.StartDate, plan.EndDate, planJSON); err != nil {
		return fmt.Errorf("saving trip %s: %w", id, err)
	}
	return nil
}

// GetTrip retrieves a stored trip by id.
// Returns nil, nil when the id is unknown.
func (r *Repository) GetTrip(ctx context.Context, id string) (*StoredTrip, error) {
	const q = `
		SELECT id, destination, start_date, end_date, plan, created_at
		FROM trips
		WHERE id = $1
	`

	var t StoredTrip
	var planJSON []byte

	err := r.q.QueryRow(ctx, q, id).Scan(
		&t.ID,
		&t.Destination,
		&t.StartDate,
		&t.EndDate,
		&planJSON,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying trip %s: %w", id, err)
	}

	if err := json.Unmarshal(planJSON, &t.Plan); err != nil {
		return nil, fmt.Errorf("unmarshaling plan for trip %s: %w", id, err)
	}
	return &t, nil
}

// ListTripsByDestination returns recent trips planned for a destination,
// newest first. Uses the JSONB @> containment operator against the stored
// plan so matching is case-exact on the plan's own destination field.
func (r *Repository) ListTripsByDestination(ctx context.Context, destination string, limit int) ([]*StoredTrip, error) {
	filter, err := json.Marshal(map[string]any{"destination": destination})
	if err != nil {
		return nil, fmt.Errorf("marshaling JSONB filter: %w", err)
	}

	const q = `
		SELECT id, destination, start_date, end_date, plan, created_at
		FROM trips
		WHERE plan @> $1::jsonb
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, q, string(filter), limit)
	if err != nil {
		return nil, fmt.Errorf("querying trips for %s: %w", destination, err)
	}
	defer rows.Close()

	var results []*StoredTrip
	for rows.Next() {
		var t StoredTrip
		var planJSON []byte

		if err := rows.Scan(
			&t.ID,
			&t.Destination,
			&t.StartDate,
			&t.EndDate,
			&planJSON,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning trip row: %w", err)
		}

		if err := json.Unmarshal(planJSON, &t.Plan); err != nil {
			return nil, fmt.Errorf("unmarshaling trip plan: %w", err)
		}
		results = append(results, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trip rows: %w", err)
	}
	return results, nil
}
