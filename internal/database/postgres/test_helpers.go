package postgres

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	testPool          *pgxpool.Pool
	migrationsApplied bool
	migrationsMux     sync.Mutex
)

// testDB returns a pool for the database named by TEST_DATABASE_URL, skipping
// the test when the variable is unset. Migrations are applied once per package.
func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration test")
	}

	migrationsMux.Lock()
	defer migrationsMux.Unlock()

	if testPool == nil {
		pool, err := pgxpool.New(context.Background(), connString)
		if err != nil {
			t.Fatalf("failed to connect to test database: %v", err)
		}
		testPool = pool
	}

	if !migrationsApplied {
		if err := applyMigrations(context.Background(), testPool, "../../../migrations"); err != nil {
			t.Fatalf("failed to apply migrations: %v", err)
		}
		migrationsApplied = true
	}

	return testPool
}

// applyMigrations runs the Up section of every migration file in order
func applyMigrations(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		sql := string(content)
		sql = strings.Replace(sql, "-- +goose Up\n", "", 1)
		if downIdx := strings.Index(sql, "-- +goose Down"); downIdx != -1 {
			sql = sql[:downIdx]
		}

		if _, err := pool.Exec(ctx, sql); err != nil {
			return err
		}
	}
	return nil
}
