package formdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new form repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) ListForms(ctx context.Context, db bun.IDB) ([]Form, error) {
	db = r.resolveDB(db)
	var forms []Form
	if err := db.NewSelect().Model(&forms).Order("f.created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, nil
}

func (r *Impl) ListFormsByStatus(ctx context.Context, db bun.IDB, status formdomain.Status) ([]Form, error) {
	db = r.resolveDB(db)
	var forms []Form
	err := db.NewSelect().
		Model(&forms).
		Where("f.status = ?", status).
		Order("f.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms by status: %w", err)
	}
	return forms, nil
}

func (r *Impl) GetForm(ctx context.Context, db bun.IDB, id uuid.UUID) (*Form, error) {
	db = r.resolveDB(db)
	form := new(Form)
	if err := db.NewSelect().Model(form).Where("f.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return form, nil
}

func (r *Impl) GetFormsByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]Form, error) {
	if len(ids) == 0 {
		return []Form{}, nil
	}
	db = r.resolveDB(db)
	var forms []Form
	if err := db.NewSelect().Model(&forms).Where("f.id IN (?)", bun.In(ids)).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to get forms by ids: %w", err)
	}
	return forms, nil
}

func (r *Impl) CreateForm(ctx context.Context, db bun.IDB, form *Form) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if form.ID == uuid.Nil {
		form.ID = uuid.New()
	}
	form.CreatedAt = now
	form.UpdatedAt = now
	if _, err := db.NewInsert().Model(form).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

func (r *Impl) UpdateForm(ctx context.Context, db bun.IDB, form *Form) error {
	db = r.resolveDB(db)
	form.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(form).
		Column("title", "description", "fields", "deadline", "application_limit", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update form: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) SetStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status formdomain.Status) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Form)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set form status: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) DeleteForm(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().Model((*Form)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
