package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dralina/clinic/internal/platform/db"
)

// testPool is nil unless TEST_DATABASE_URL points at a disposable
// database; tests skip themselves in that case.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, url, 10, 2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to test database: %v\n", err)
		os.Exit(1)
	}
	testPool = pool

	if _, err := db.NewMigrator(pool, "../../migrations").Up(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
}

func resetTables(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := testPool.Exec(ctx, `
		TRUNCATE appointments, patients, work_schedules, services, doctors, blog_posts
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("reset tables: %v", err)
	}
}
