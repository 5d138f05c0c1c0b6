package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	"github.com/skyrden-airlines/portal/app"
	"github.com/skyrden-airlines/portal/config"
	"github.com/skyrden-airlines/portal/db/bundb"
)

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "portal database tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrators opens the configured database and hands every module's
// migrator to fn in dependency order.
func withMigrators(c *cli.Context, fn func(module string, migrator *migrate.Migrator) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := bundb.Open(c.Context, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	sets := app.MigrationSets()
	migrators := bundb.Migrators(db, sets...)
	for _, set := range sets {
		if err := fn(set.Module, migrators[set.Module]); err != nil {
			return fmt.Errorf("module %s: %w", set.Module, err)
		}
	}
	return nil
}

func moduleNames() string {
	var names []string
	for _, set := range app.MigrationSets() {
		names = append(names, set.Module)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(module string, migrator *migrate.Migrator) error {
						fmt.Printf("Initializing migrations for module: %s\n", module)
						return migrator.Init(c.Context)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(module string, migrator *migrate.Migrator) error {
						if err := migrator.Init(c.Context); err != nil {
							return err
						}
						if err := migrator.Lock(c.Context); err != nil {
							return err
						}
						defer func() { _ = migrator.Unlock(c.Context) }()

						group, err := migrator.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", module)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", module, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "module", Required: true, Usage: "module to roll back (" + moduleNames() + ")"},
				},
				Action: func(c *cli.Context) error {
					target := c.String("module")
					found := false
					err := withMigrators(c, func(module string, migrator *migrate.Migrator) error {
						if module != target {
							return nil
						}
						found = true
						group, err := migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", module)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", module, group)
						}
						return nil
					})
					if err == nil && !found {
						return fmt.Errorf("invalid module name: %s", target)
					}
					return err
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(module string, migrator *migrate.Migrator) error {
						ms, err := migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", module)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						return nil
					})
				},
			},
		},
	}
}
