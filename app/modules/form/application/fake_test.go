package formservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
)

// FakeFormRepo is an in-memory formdb.Repository.
type FakeFormRepo struct {
	forms map[uuid.UUID]formdb.Form
	trace []string

	UpdateFormFunc func(ctx context.Context, db bun.IDB, form *formdb.Form) error
}

func NewFakeFormRepo() *FakeFormRepo {
	return &FakeFormRepo{forms: map[uuid.UUID]formdb.Form{}}
}

func (f *FakeFormRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeFormRepo) Trace() []string { return f.trace }

func (f *FakeFormRepo) ListForms(ctx context.Context, db bun.IDB) ([]formdb.Form, error) {
	f.record("ListForms")
	out := make([]formdb.Form, 0, len(f.forms))
	for _, form := range f.forms {
		out = append(out, form)
	}
	return out, nil
}

func (f *FakeFormRepo) ListFormsByStatus(ctx context.Context, db bun.IDB, status formdomain.Status) ([]formdb.Form, error) {
	f.record("ListFormsByStatus")
	var out []formdb.Form
	for _, form := range f.forms {
		if form.Status == status {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *FakeFormRepo) GetForm(ctx context.Context, db bun.IDB, id uuid.UUID) (*formdb.Form, error) {
	f.record("GetForm")
	form, ok := f.forms[id]
	if !ok {
		return nil, formdb.ErrNotFound
	}
	return &form, nil
}

func (f *FakeFormRepo) GetFormsByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]formdb.Form, error) {
	f.record("GetFormsByIDs")
	var out []formdb.Form
	for _, id := range ids {
		if form, ok := f.forms[id]; ok {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *FakeFormRepo) CreateForm(ctx context.Context, db bun.IDB, form *formdb.Form) error {
	f.record("CreateForm")
	if form.ID == uuid.Nil {
		form.ID = uuid.New()
	}
	form.CreatedAt = time.Now().UTC()
	form.UpdatedAt = form.CreatedAt
	f.forms[form.ID] = *form
	return nil
}

func (f *FakeFormRepo) UpdateForm(ctx context.Context, db bun.IDB, form *formdb.Form) error {
	f.record("UpdateForm")
	if f.UpdateFormFunc != nil {
		return f.UpdateFormFunc(ctx, db, form)
	}
	if _, ok := f.forms[form.ID]; !ok {
		return formdb.ErrNoRowsAffected
	}
	f.forms[form.ID] = *form
	return nil
}

func (f *FakeFormRepo) SetStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status formdomain.Status) error {
	f.record("SetStatus")
	form, ok := f.forms[id]
	if !ok {
		return formdb.ErrNoRowsAffected
	}
	form.Status = status
	f.forms[id] = form
	return nil
}

func (f *FakeFormRepo) DeleteForm(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteForm")
	if _, ok := f.forms[id]; !ok {
		return formdb.ErrNoRowsAffected
	}
	delete(f.forms, id)
	return nil
}

var _ formdb.Repository = (*FakeFormRepo)(nil)

// FakeCounter reports a fixed number of responses per form.
type FakeCounter struct {
	Counts map[uuid.UUID]int
	Err    error
}

func (f *FakeCounter) CountByForm(ctx context.Context, db bun.IDB, formID uuid.UUID) (int, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Counts[formID], nil
}

var _ ResponseCounter = (*FakeCounter)(nil)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
