package formservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/db/bundb"
)

// service implements the Service interface.
type service struct {
	repo      formdb.Repository
	responses ResponseCounter
	db        *bun.DB
	deadlines *formdomain.DeadlineParser
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time
}

// NewService creates a new form service.
func NewService(
	repo formdb.Repository,
	responses ResponseCounter,
	db *bun.DB,
	clock formdomain.Clock,
	logger *slog.Logger,
	tel observability.Telemetry,
) Service {
	if clock == nil {
		clock = formdomain.RealClock{}
	}
	tel.Service = "FormService"
	tel.Logger = logger
	return &service{
		repo:      repo,
		responses: responses,
		db:        db,
		deadlines: formdomain.NewDeadlineParser(clock),
		logger:    logger,
		telemetry: tel,
		now:       clock.Now,
	}
}

func (s *service) views(forms []formdb.Form, keep func(*formdb.Form) bool) []*FormView {
	now := s.now()
	out := make([]*FormView, 0, len(forms))
	for i := range forms {
		if keep != nil && !keep(&forms[i]) {
			continue
		}
		out = append(out, NewFormView(&forms[i], now))
	}
	return out
}

func (s *service) ListOpenForms(ctx context.Context) ([]*FormView, error) {
	return observability.Run(ctx, s.telemetry, "ListOpenForms", "", func(ctx context.Context) ([]*FormView, error) {
		forms, err := s.repo.ListFormsByStatus(ctx, nil, formdomain.StatusOpen)
		if err != nil {
			return nil, err
		}
		now := s.now()
		return s.views(forms, func(f *formdb.Form) bool { return f.Accepting(now) }), nil
	})
}

func (s *service) GetOpenForm(ctx context.Context, id uuid.UUID) (*FormView, error) {
	return observability.Run(ctx, s.telemetry, "GetOpenForm", id.String(), func(ctx context.Context) (*FormView, error) {
		form, err := s.load(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		if !form.Accepting(s.now()) {
			return nil, ErrFormNotFound
		}
		return NewFormView(form, s.now()), nil
	})
}

func (s *service) ListForms(ctx context.Context) ([]*FormView, error) {
	return observability.Run(ctx, s.telemetry, "ListForms", "", func(ctx context.Context) ([]*FormView, error) {
		forms, err := s.repo.ListForms(ctx, nil)
		if err != nil {
			return nil, err
		}
		return s.views(forms, nil), nil
	})
}

func (s *service) GetForm(ctx context.Context, id uuid.UUID) (*FormView, error) {
	return observability.Run(ctx, s.telemetry, "GetForm", id.String(), func(ctx context.Context) (*FormView, error) {
		form, err := s.load(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		return NewFormView(form, s.now()), nil
	})
}

func (s *service) load(ctx context.Context, db bun.IDB, id uuid.UUID) (*formdb.Form, error) {
	form, err := s.repo.GetForm(ctx, db, id)
	if errors.Is(err, formdb.ErrNotFound) {
		return nil, ErrFormNotFound
	}
	return form, err
}

func (s *service) CreateForm(ctx context.Context, input FormInput, createdBy uuid.UUID) (*FormView, error) {
	return observability.Run(ctx, s.telemetry, "CreateForm", "", func(ctx context.Context) (*FormView, error) {
		if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		form := &formdb.Form{
			ApplicationLimit: 1,
			Status:           formdomain.StatusOpen,
		}
		if createdBy != uuid.Nil {
			form.CreatedBy = &createdBy
		}
		if input.Fields == nil {
			input.Fields = []formdomain.Field{}
		}
		if err := s.apply(form, input); err != nil {
			return nil, err
		}

		if err := s.repo.CreateForm(ctx, nil, form); err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "Form created",
			slog.String("form_id", form.ID.String()),
			slog.String("status", string(form.Status)),
			slog.Int("field_count", len(form.Fields)),
		)
		return NewFormView(form, s.now()), nil
	})
}

func (s *service) UpdateForm(ctx context.Context, id uuid.UUID, input FormInput) (*FormView, error) {
	return observability.Run(ctx, s.telemetry, "UpdateForm", id.String(), func(ctx context.Context) (*FormView, error) {
		return bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (*FormView, error) {
			form, err := s.load(ctx, db, id)
			if err != nil {
				return nil, err
			}
			if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
				return nil, ErrTitleRequired
			}
			if err := s.apply(form, input); err != nil {
				return nil, err
			}
			if err := s.repo.UpdateForm(ctx, db, form); err != nil {
				if errors.Is(err, formdb.ErrNoRowsAffected) {
					return nil, ErrFormNotFound
				}
				return nil, err
			}
			return NewFormView(form, s.now()), nil
		})
	})
}

// apply copies the supplied members of input onto form.
func (s *service) apply(form *formdb.Form, input FormInput) error {
	if input.Title != nil {
		form.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		form.Description = strings.TrimSpace(*input.Description)
	}
	if input.Fields != nil {
		fields, err := formdomain.NormalizeFields(input.Fields)
		if err != nil {
			return err
		}
		form.Fields = fields
	}
	if input.Deadline != nil {
		deadline, err := s.deadlines.Parse(*input.Deadline, input.DeadlineTimezone)
		if err != nil {
			return err
		}
		form.Deadline = deadline
	}
	if input.ApplicationLimit != nil {
		if *input.ApplicationLimit < 1 {
			return ErrInvalidLimit
		}
		form.ApplicationLimit = *input.ApplicationLimit
	}
	switch {
	case input.Status != nil:
		status, err := formdomain.ParseStatus(*input.Status)
		if err != nil {
			return err
		}
		form.Status = status
	case input.IsActive != nil:
		form.Status = formdomain.StatusFromActive(*input.IsActive)
	}
	return nil
}

func (s *service) DeleteForm(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	return observability.Run(ctx, s.telemetry, "DeleteForm", id.String(), func(ctx context.Context) (*DeleteResult, error) {
		return bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (*DeleteResult, error) {
			if _, err := s.load(ctx, db, id); err != nil {
				return nil, err
			}
			count, err := s.responses.CountByForm(ctx, db, id)
			if err != nil {
				return nil, err
			}

			if count > 0 {
				if err := s.repo.SetStatus(ctx, db, id, formdomain.StatusClosed); err != nil {
					return nil, err
				}
				s.logger.InfoContext(ctx, "Form with responses closed instead of deleted",
					slog.String("form_id", id.String()),
					slog.Int("response_count", count),
				)
				return &DeleteResult{Deleted: false, Deactivated: true}, nil
			}

			if err := s.repo.DeleteForm(ctx, db, id); err != nil {
				if errors.Is(err, formdb.ErrNoRowsAffected) {
					return nil, ErrFormNotFound
				}
				return nil, err
			}
			s.logger.InfoContext(ctx, "Form deleted", slog.String("form_id", id.String()))
			return &DeleteResult{Deleted: true}, nil
		})
	})
}
