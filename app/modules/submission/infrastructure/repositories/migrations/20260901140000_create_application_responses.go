package submissionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating application_responses table...")

		if _, err := db.NewCreateTable().Model((*submissiondb.Response)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create application_responses table: %w", err)
		}

		indexes := []struct {
			name    string
			unique  bool
			columns []string
		}{
			{name: "uq_application_responses_slot", unique: true, columns: []string{"form_id", "user_id", "slot"}},
			{name: "idx_application_responses_user", columns: []string{"user_id"}},
			{name: "idx_application_responses_status", columns: []string{"status", "notification_sent"}},
		}
		for _, idx := range indexes {
			q := db.NewCreateIndex().
				Model((*submissiondb.Response)(nil)).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists()
			if idx.unique {
				q = q.Unique()
			}
			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		fmt.Println("Application responses table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping application_responses table...")
		_, err := db.NewDropTable().Model((*submissiondb.Response)(nil)).IfExists().Exec(ctx)
		return err
	})
}
