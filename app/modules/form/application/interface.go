package formservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
)

// Service manages the form catalog.
type Service interface {
	// ListOpenForms returns forms that currently accept submissions.
	ListOpenForms(ctx context.Context) ([]*FormView, error)
	// GetOpenForm returns ErrFormNotFound for forms that are not accepting.
	GetOpenForm(ctx context.Context, id uuid.UUID) (*FormView, error)

	ListForms(ctx context.Context) ([]*FormView, error)
	GetForm(ctx context.Context, id uuid.UUID) (*FormView, error)
	CreateForm(ctx context.Context, input FormInput, createdBy uuid.UUID) (*FormView, error)
	// UpdateForm only overwrites the attributes input carries.
	UpdateForm(ctx context.Context, id uuid.UUID, input FormInput) (*FormView, error)
	// DeleteForm closes forms that have responses instead of deleting them.
	DeleteForm(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

// ResponseCounter reports how many submissions reference a form.
type ResponseCounter interface {
	CountByForm(ctx context.Context, db bun.IDB, formID uuid.UUID) (int, error)
}

// FormInput is the create/update payload. Nil members are left unchanged
// on update. Status wins over the legacy IsActive flag.
type FormInput struct {
	Title            *string            `json:"title"`
	Description      *string            `json:"description"`
	Fields           []formdomain.Field `json:"fields"`
	Deadline         *string            `json:"deadline"`
	DeadlineTimezone string             `json:"deadline_timezone"`
	ApplicationLimit *int               `json:"application_limit"`
	Status           *string            `json:"status"`
	IsActive         *bool              `json:"is_active"`
}

// FormView is the API representation of a form.
type FormView struct {
	ID                   uuid.UUID          `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Fields               []formdomain.Field `json:"fields"`
	Deadline             *time.Time         `json:"deadline"`
	ApplicationLimit     int                `json:"application_limit"`
	Status               formdomain.Status  `json:"status"`
	IsActive             bool               `json:"is_active"`
	AcceptingSubmissions bool               `json:"accepting_submissions"`
	CreatedBy            *uuid.UUID         `json:"created_by,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// NewFormView projects f as seen at now.
func NewFormView(f *formdb.Form, now time.Time) *FormView {
	return &FormView{
		ID:                   f.ID,
		Title:                f.Title,
		Description:          f.Description,
		Fields:               f.Fields,
		Deadline:             f.Deadline,
		ApplicationLimit:     f.ApplicationLimit,
		Status:               f.Status,
		IsActive:             f.Status == formdomain.StatusOpen,
		AcceptingSubmissions: f.Accepting(now),
		CreatedBy:            f.CreatedBy,
		CreatedAt:            f.CreatedAt,
		UpdatedAt:            f.UpdatedAt,
	}
}

// DeleteResult reports what DeleteForm did.
type DeleteResult struct {
	Deleted     bool `json:"deleted"`
	Deactivated bool `json:"deactivated"`
}
