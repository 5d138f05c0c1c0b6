// Package bundbtest opens migrated in-memory SQLite databases for tests.
package bundbtest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"

	"github.com/skyrden-airlines/portal/config"
	"github.com/skyrden-airlines/portal/db/bundb"
)

// Open returns a fresh in-memory database with sets applied. The database is
// closed when the test ends.
func Open(tb testing.TB, sets ...bundb.MigrationSet) *bun.DB {
	tb.Helper()
	ctx := context.Background()

	db, err := bundb.Open(ctx, config.DatabaseConfig{Driver: bundb.DriverSQLite, DSN: "file::memory:"})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := bundb.MigrateAll(ctx, db, logger, sets...); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}
