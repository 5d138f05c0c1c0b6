package usermigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the user module schema history.
var Migrations = migrate.NewMigrations()
