package formmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the form module schema history.
var Migrations = migrate.NewMigrations()
