package formmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating application_forms table...")

		if _, err := db.NewCreateTable().Model((*formdb.Form)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create application_forms table: %w", err)
		}
		if _, err := db.NewCreateIndex().
			Model((*formdb.Form)(nil)).
			Index("idx_application_forms_status").
			Column("status").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create application_forms index: %w", err)
		}

		fmt.Println("Application forms table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping application_forms table...")
		_, err := db.NewDropTable().Model((*formdb.Form)(nil)).IfExists().Exec(ctx)
		return err
	})
}
