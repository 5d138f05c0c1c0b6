package app

import (
	formmigrations "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories/migrations"
	submissionmigrations "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories/migrations"
	usermigrations "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories/migrations"
	"github.com/skyrden-airlines/portal/db/bundb"
)

// MigrationSets lists every module's migrations in dependency order.
func MigrationSets() []bundb.MigrationSet {
	return []bundb.MigrationSet{
		{Module: "user", Migrations: usermigrations.Migrations},
		{Module: "form", Migrations: formmigrations.Migrations},
		{Module: "submission", Migrations: submissionmigrations.Migrations},
	}
}
