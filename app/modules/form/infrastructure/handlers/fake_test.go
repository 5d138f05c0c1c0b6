package formhandlers

import (
	"context"

	"github.com/google/uuid"

	formservice "github.com/skyrden-airlines/portal/app/modules/form/application"
)

// FakeService is a programmable formservice.Service.
type FakeService struct {
	ListOpenFormsFunc func(ctx context.Context) ([]*formservice.FormView, error)
	GetOpenFormFunc   func(ctx context.Context, id uuid.UUID) (*formservice.FormView, error)
	ListFormsFunc     func(ctx context.Context) ([]*formservice.FormView, error)
	GetFormFunc       func(ctx context.Context, id uuid.UUID) (*formservice.FormView, error)
	CreateFormFunc    func(ctx context.Context, input formservice.FormInput, createdBy uuid.UUID) (*formservice.FormView, error)
	UpdateFormFunc    func(ctx context.Context, id uuid.UUID, input formservice.FormInput) (*formservice.FormView, error)
	DeleteFormFunc    func(ctx context.Context, id uuid.UUID) (*formservice.DeleteResult, error)
}

func (f *FakeService) ListOpenForms(ctx context.Context) ([]*formservice.FormView, error) {
	if f.ListOpenFormsFunc != nil {
		return f.ListOpenFormsFunc(ctx)
	}
	return []*formservice.FormView{}, nil
}

func (f *FakeService) GetOpenForm(ctx context.Context, id uuid.UUID) (*formservice.FormView, error) {
	if f.GetOpenFormFunc != nil {
		return f.GetOpenFormFunc(ctx, id)
	}
	return nil, formservice.ErrFormNotFound
}

func (f *FakeService) ListForms(ctx context.Context) ([]*formservice.FormView, error) {
	if f.ListFormsFunc != nil {
		return f.ListFormsFunc(ctx)
	}
	return []*formservice.FormView{}, nil
}

func (f *FakeService) GetForm(ctx context.Context, id uuid.UUID) (*formservice.FormView, error) {
	if f.GetFormFunc != nil {
		return f.GetFormFunc(ctx, id)
	}
	return nil, formservice.ErrFormNotFound
}

func (f *FakeService) CreateForm(ctx context.Context, input formservice.FormInput, createdBy uuid.UUID) (*formservice.FormView, error) {
	if f.CreateFormFunc != nil {
		return f.CreateFormFunc(ctx, input, createdBy)
	}
	return &formservice.FormView{ID: uuid.New()}, nil
}

func (f *FakeService) UpdateForm(ctx context.Context, id uuid.UUID, input formservice.FormInput) (*formservice.FormView, error) {
	if f.UpdateFormFunc != nil {
		return f.UpdateFormFunc(ctx, id, input)
	}
	return &formservice.FormView{ID: id}, nil
}

func (f *FakeService) DeleteForm(ctx context.Context, id uuid.UUID) (*formservice.DeleteResult, error) {
	if f.DeleteFormFunc != nil {
		return f.DeleteFormFunc(ctx, id)
	}
	return &formservice.DeleteResult{Deleted: true}, nil
}

var _ formservice.Service = (*FakeService)(nil)
