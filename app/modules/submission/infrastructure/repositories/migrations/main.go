package submissionmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the submission module schema history.
var Migrations = migrate.NewMigrations()
