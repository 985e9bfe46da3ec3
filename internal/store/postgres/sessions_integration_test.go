package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"bgcafe/cafe-service/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestCreateSessionConcurrency(t *testing.T) {
	ctx := context.Background()
	st, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.CreateSession(ctx, store.CreateSessionInput{
				SessionID:     uuid.NewString(),
				TableNumber:   12,
				CustomerCount: 2,
				StartTime:     1700000000,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, store.ErrActiveSessionExists):
			conflicted++
		default:
			t.Fatalf("create session: %v", err)
		}
	}
	if succeeded != 1 || conflicted != attempts-1 {
		t.Fatalf("succeeded=%d conflicted=%d, want 1 and %d", succeeded, conflicted, attempts-1)
	}
}

func TestListSessionsOrdering(t *testing.T) {
	ctx := context.Background()
	st, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	seedSession(t, ctx, st, 1, 100, 150)
	seedSession(t, ctx, st, 2, 200, 250)
	seedSession(t, ctx, st, 3, 120, 0)
	seedSession(t, ctx, st, 4, 180, 0)

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}

	var tables []int
	for _, sess := range sessions {
		tables = append(tables, sess.TableNumber)
	}
	want := []int{4, 3, 2, 1}
	if len(tables) != len(want) {
		t.Fatalf("tables = %v, want %v", tables, want)
	}
	for i := range want {
		if tables[i] != want[i] {
			t.Fatalf("tables = %v, want %v (open first, newest start first)", tables, want)
		}
	}
}

func seedSession(t *testing.T, ctx context.Context, st *Store, table int, start, end int64) {
	t.Helper()
	created, err := st.CreateSession(ctx, store.CreateSessionInput{
		SessionID:     uuid.NewString(),
		TableNumber:   table,
		CustomerCount: 1,
		StartTime:     start,
	})
	if err != nil {
		t.Fatalf("seed session for table %d: %v", table, err)
	}
	if end != 0 {
		if _, err := st.CloseSession(ctx, table, created.SessionID, end); err != nil {
			t.Fatalf("close session for table %d: %v", table, err)
		}
	}
}

func setupTestStore(t *testing.T, ctx context.Context) (*Store, func()) {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}
	if dsn == "" {
		t.Skip("TEST_DB_DSN or DB_DSN is required for integration tests")
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := createTestSchema(ctx, dsn, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	pool, err := newPoolWithSchema(ctx, dsn, schema)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}

	st := NewStore(pool)
	if err := st.Migrate(ctx); err != nil {
		pool.Close()
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		pool.Close()
		_ = dropTestSchema(context.Background(), dsn, schema)
	}
	return st, cleanup
}

func createTestSchema(ctx context.Context, dsn, schema string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, "CREATE SCHEMA "+schema)
	return err
}

func dropTestSchema(ctx context.Context, dsn, schema string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE")
	return err
}

func newPoolWithSchema(ctx context.Context, dsn, schema string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	return pgxpool.NewWithConfig(ctx, cfg)
}
