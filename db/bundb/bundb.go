// Package bundb opens the bun database for the configured driver and runs
// the per-module migrations.
package bundb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"

	"github.com/skyrden-airlines/portal/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.Driver {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case DriverSQLite, "":
		sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// SQLite serialises writers; one connection avoids SQLITE_BUSY and
		// keeps in-memory databases alive.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// MigrationSet is one module's migrations.
type MigrationSet struct {
	Module     string
	Migrations *migrate.Migrations
}

// Migrators returns one migrator per module, each with its own bookkeeping
// tables so modules can be migrated or rolled back independently.
func Migrators(db *bun.DB, sets ...MigrationSet) map[string]*migrate.Migrator {
	migrators := make(map[string]*migrate.Migrator, len(sets))
	for _, set := range sets {
		migrators[set.Module] = migrate.NewMigrator(db, set.Migrations,
			migrate.WithTableName("bun_migrations_"+set.Module),
			migrate.WithLocksTableName("bun_migration_locks_"+set.Module),
		)
	}
	return migrators
}

// MigrateAll initialises and applies pending migrations in the given order.
func MigrateAll(ctx context.Context, db *bun.DB, logger *slog.Logger, sets ...MigrationSet) error {
	migrators := Migrators(db, sets...)
	for _, set := range sets {
		migrator := migrators[set.Module]
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init migrations for %s: %w", set.Module, err)
		}
		if err := migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to lock migrations for %s: %w", set.Module, err)
		}
		group, err := migrator.Migrate(ctx)
		unlockErr := migrator.Unlock(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", set.Module, err)
		}
		if unlockErr != nil {
			return fmt.Errorf("failed to unlock migrations for %s: %w", set.Module, unlockErr)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", slog.String("module", set.Module))
		} else {
			logger.InfoContext(ctx, "Migrated module", slog.String("module", set.Module), slog.String("group", group.String()))
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique constraint failure on
// either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// RunInTx runs fn inside a transaction on db. A nil db runs fn with a nil
// handle so repositories fall back to their default connection.
func RunInTx[T any](ctx context.Context, db *bun.DB, fn func(ctx context.Context, tx bun.IDB) (T, error)) (T, error) {
	if db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
