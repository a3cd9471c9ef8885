package storage_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/trip-planner/internal/planner"
	"github.com/voyago/trip-planner/internal/storage"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

// ---- mock pgx.Rows ----

type fakeRows struct {
	rows    [][]any
	idx     int
	rowErr  error
	scanErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= len(f.rows) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.idx-1]
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		switch v := d.(type) {
		case *string:
			*v = row[i].(string)
		case *[]byte:
			*v = row[i].([]byte)
		case *time.Time:
			*v = row[i].(time.Time)
		}
	}
	return nil
}

// ---- mock MigrationPool ----

type mockMigrationPool struct {
	beginFn func(ctx context.Context) (pgx.Tx, error)
}

func (m *mockMigrationPool) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.beginFn(ctx)
}

// mockTx is a minimal pgx.Tx implementation for testing migrations.
type mockTx struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	commitFn   func(ctx context.Context) error
	rollbackFn func(ctx context.Context) error
}

func (t *mockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.execFn(ctx, sql, args...)
}
func (t *mockTx) Commit(ctx context.Context) error   { return t.commitFn(ctx) }
func (t *mockTx) Rollback(ctx context.Context) error { return t.rollbackFn(ctx) }

// pgx.Tx has many more methods — stub them all out.
func (t *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (t *mockTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *mockTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *mockTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (t *mockTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *mockTx) Conn() *pgx.Conn { return nil }

// ---- helpers ----

func samplePlan() planner.TripPlan {
	cost := 550.0
	return planner.TripPlan{
		Destination:   "Paris",
		StartDate:     "2025-06-01",
		EndDate:       "2025-06-03",
		Adults:        2,
		EstimatedCost: &cost,
		Itinerary: []planner.DayPlan{
			{Date: "2025-06-01", Activities: []string{"Visit Louvre"}},
		},
	}
}

func marshalPlan(t *testing.T, plan planner.TripPlan) []byte {
	t.Helper()
	b, err := json.Marshal(plan)
	require.NoError(t, err)
	return b
}

func writeSQLFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// ---- SaveTrip tests ----

func TestSaveTrip_Success(t *testing.T) {
	var capturedArgs []any
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			capturedArgs = args
			return pgconn.CommandTag{}, nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	err := repo.SaveTrip(context.Background(), "trip-1", samplePlan())
	require.NoError(t, err)
	require.Len(t, capturedArgs, 5)
	assert.Equal(t, "trip-1", capturedArgs[0])
	assert.Equal(t, "Paris", capturedArgs[1])
	assert.Equal(t, "2025-06-01", capturedArgs[2])
	assert.Equal(t, "2025-06-03", capturedArgs[3])
}

func TestSaveTrip_DBError(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("db error")
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	err := repo.SaveTrip(context.Background(), "trip-1", samplePlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving trip")
}

// ---- GetTrip tests ----

func TestGetTrip_Found(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	planJSON := marshalPlan(t, samplePlan())

	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*string) = "trip-1"
				*dest[1].(*string) = "Paris"
				*dest[2].(*string) = "2025-06-01"
				*dest[3].(*string) = "2025-06-03"
				*dest[4].(*[]byte) = planJSON
				*dest[5].(*time.Time) = now
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	trip, err := repo.GetTrip(context.Background(), "trip-1")
	require.NoError(t, err)
	require.NotNil(t, trip)
	assert.Equal(t, "trip-1", trip.ID)
	assert.Equal(t, "Paris", trip.Destination)
	require.NotNil(t, trip.Plan.EstimatedCost)
	assert.Equal(t, 550.0, *trip.Plan.EstimatedCost)
	assert.Equal(t, now, trip.CreatedAt)
}

func TestGetTrip_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	trip, err := repo.GetTrip(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, trip)
}

func TestGetTrip_DBError(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error { return fmt.Errorf("connection reset") }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.GetTrip(context.Background(), "trip-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying trip")
}

func TestGetTrip_BadJSON(t *testing.T) {
	now := time.Now()
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*string) = "trip-1"
				*dest[1].(*string) = "Paris"
				*dest[2].(*string) = "2025-06-01"
				*dest[3].(*string) = "2025-06-03"
				*dest[4].(*[]byte) = []byte("not-valid-json")
				*dest[5].(*time.Time) = now
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.GetTrip(context.Background(), "trip-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshaling")
}

// ---- ListTripsByDestination tests ----

func TestListTripsByDestination_Found(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	planJSON := marshalPlan(t, samplePlan())

	rows := &fakeRows{
		rows: [][]any{{"trip-1", "Paris", "2025-06-01", "2025-06-03", planJSON, now}},
	}

	var capturedArgs []any
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			capturedArgs = args
			return rows, nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	results, err := repo.ListTripsByDestination(context.Background(), "Paris", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "trip-1", results[0].ID)
	assert.Equal(t, "Paris", results[0].Plan.Destination)

	require.Len(t, capturedArgs, 2)
	assert.JSONEq(t, `{"destination":"Paris"}`, capturedArgs[0].(string))
	assert.Equal(t, 10, capturedArgs[1])
}

func TestListTripsByDestination_Empty(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
			return &fakeRows{}, nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	results, err := repo.ListTripsByDestination(context.Background(), "Atlantis", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListTripsByDestination_QueryError(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
			return nil, fmt.Errorf("query failed")
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListTripsByDestination(context.Background(), "Paris", 10)
	require.Error(t, err)
}

func TestListTripsByDestination_ScanError(t *testing.T) {
	now := time.Now()
	rows := &fakeRows{
		rows:    [][]any{{"trip-1", "Paris", "2025-06-01", "2025-06-03", []byte("{}"), now}},
		scanErr: fmt.Errorf("scan failed"),
	}

	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListTripsByDestination(context.Background(), "Paris", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning")
}

func TestListTripsByDestination_RowsErr(t *testing.T) {
	rows := &fakeRows{rowErr: fmt.Errorf("rows iteration error")}

	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListTripsByDestination(context.Background(), "Paris", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterating")
}

// ---- NewRepository ----

func TestNewRepository_NotNil(t *testing.T) {
	repo := storage.NewRepository(nil)
	assert.NotNil(t, repo)
}

// ---- RunMigrations tests ----

func TestRunMigrations_MissingDir(t *testing.T) {
	err := storage.RunMigrations(context.Background(), nil, "/nonexistent/dir")
	require.Error(t, err)
}

func TestRunMigrations_EmptyDir(t *testing.T) {
	err := storage.RunMigrations(context.Background(), nil, t.TempDir())
	require.NoError(t, err)
}

func TestRunMigrations_Success(t *testing.T) {
	dir := t.TempDir()
	writeSQLFile(t, dir, "001_test.sql", "SELECT 1;")

	tx := &mockTx{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, nil
		},
		commitFn:   func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error { return nil },
	}
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.NoError(t, err)
}

func TestRunMigrations_ExecErrorRollsBack(t *testing.T) {
	dir := t.TempDir()
	writeSQLFile(t, dir, "001_test.sql", "INVALID SQL;")

	rolledBack := false
	tx := &mockTx{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("syntax error")
		},
		commitFn:   func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error { rolledBack = true; return nil },
	}
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.Error(t, err)
	assert.True(t, rolledBack)
}

func TestRunMigrations_SortsFilesLexicographically(t *testing.T) {
	dir := t.TempDir()
	var order []string
	writeSQLFile(t, dir, "003_c.sql", "SELECT 3;")
	writeSQLFile(t, dir, "001_a.sql", "SELECT 1;")
	writeSQLFile(t, dir, "002_b.sql", "SELECT 2;")

	tx := &mockTx{
		execFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			order = append(order, sql)
			return pgconn.CommandTag{}, nil
		},
		commitFn:   func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error { return nil },
	}
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.NoError(t, err)
	require.Len(t, order, 3)
	assert.Equal(t, "SELECT 1;", order[0])
	assert.Equal(t, "SELECT 2;", order[1])
	assert.Equal(t, "SELECT 3;", order[2])
}
