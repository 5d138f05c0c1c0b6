package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users, admin_whitelist and sessions tables...")

		models := []interface{}{
			(*userdb.User)(nil),
			(*userdb.AdminWhitelistEntry)(nil),
			(*userdb.Session)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		if _, err := db.NewCreateIndex().
			Model((*userdb.Session)(nil)).
			Index("idx_sessions_user_id").
			Column("user_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create sessions index: %w", err)
		}

		fmt.Println("User tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping users, admin_whitelist and sessions tables...")

		models := []interface{}{
			(*userdb.Session)(nil),
			(*userdb.AdminWhitelistEntry)(nil),
			(*userdb.User)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}
		return nil
	})
}
