// Package testdb provides database helpers for integration tests. Tests that
// call Open run against a real PostgreSQL instance with the application
// schema applied; without a configured database they skip locally and fail
// in CI.
package testdb

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver with database/sql
	"github.com/pressly/goose/v3"

	"github.com/jmallis/purchase-api/internal/ciutil"
	"github.com/jmallis/purchase-api/migrations"
)

var migrateOnce sync.Once

// Open connects to the test database and ensures the schema is migrated.
// The connection is closed when the test finishes. When no database is
// configured the test is skipped locally; in CI a missing database is a
// pipeline misconfiguration and the test fails.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := ciutil.TestDatabaseURL()
	if url == "" {
		if ciutil.IsCI() {
			t.Fatalf("no test database configured: set %s", ciutil.EnvPurchaseTestDBURL)
		}
		t.Skipf("skipping: set %s to run database integration tests", ciutil.EnvPurchaseTestDBURL)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	migrateOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			t.Fatalf("failed to set migration dialect: %v", err)
		}
		if err := goose.Up(db, "."); err != nil {
			t.Fatalf("failed to apply migrations: %v", err)
		}
	})

	return db
}

// Truncate empties all application tables so each test starts from a clean
// slate.
func Truncate(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("TRUNCATE customers, products"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
