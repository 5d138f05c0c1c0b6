package formdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
)

// Repository persists application forms. A nil db uses the repository's
// own connection.
type Repository interface {
	ListForms(ctx context.Context, db bun.IDB) ([]Form, error)
	ListFormsByStatus(ctx context.Context, db bun.IDB, status formdomain.Status) ([]Form, error)
	GetForm(ctx context.Context, db bun.IDB, id uuid.UUID) (*Form, error)
	GetFormsByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]Form, error)
	CreateForm(ctx context.Context, db bun.IDB, form *Form) error
	UpdateForm(ctx context.Context, db bun.IDB, form *Form) error
	SetStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status formdomain.Status) error
	DeleteForm(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
