package submissionservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/skyrden-airlines/portal/app/eventbus"
	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/apperr"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/db/bundb"
)

// DefaultFeedback is stored when a reviewer leaves feedback empty.
const DefaultFeedback = "No feedback provided."

// service implements the Service interface.
type service struct {
	repo      submissiondb.Repository
	forms     formdb.Repository
	users     userdb.Repository
	notifier  Notifier
	bus       eventbus.EventBus
	db        *bun.DB
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time
}

// Deps groups the collaborators of the submission service. Notifier and
// Bus may be nil.
type Deps struct {
	Repo     submissiondb.Repository
	Forms    formdb.Repository
	Users    userdb.Repository
	Notifier Notifier
	Bus      eventbus.EventBus
	DB       *bun.DB
	Clock    formdomain.Clock
}

// NewService creates a new submission service.
func NewService(deps Deps, logger *slog.Logger, tel observability.Telemetry) Service {
	clock := deps.Clock
	if clock == nil {
		clock = formdomain.RealClock{}
	}
	tel.Service = "SubmissionService"
	tel.Logger = logger
	return &service{
		repo:      deps.Repo,
		forms:     deps.Forms,
		users:     deps.Users,
		notifier:  deps.Notifier,
		bus:       deps.Bus,
		db:        deps.DB,
		logger:    logger,
		telemetry: tel,
		now:       clock.Now,
	}
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*SubmissionView, error) {
	return observability.Run(ctx, s.telemetry, "Submit", userID.String(), func(ctx context.Context) (*SubmissionView, error) {
		templateID := strings.TrimSpace(input.TemplateID)
		if templateID == "" {
			return nil, ErrTemplateIDRequired
		}
		formID, err := uuid.Parse(templateID)
		if err != nil {
			return nil, ErrFormNotFound
		}

		user, err := s.users.GetUserByID(ctx, nil, userID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return nil, apperr.ErrAuthenticationRequired
			}
			return nil, err
		}
		if !user.HasRoblox() {
			return nil, ErrRobloxRequired
		}

		response, err := bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (*submissiondb.Response, error) {
			form, err := s.forms.GetForm(ctx, db, formID)
			if err != nil {
				if errors.Is(err, formdb.ErrNotFound) {
					return nil, ErrFormNotFound
				}
				return nil, err
			}
			if !form.Accepting(s.now()) {
				return nil, ErrFormClosed
			}

			answers, err := formdomain.ValidateResponses(form.Fields, input.Responses, formdomain.Autofill{
				formdomain.KindDiscordUsername: user.DiscordUsername,
				formdomain.KindRobloxUsername:  user.RobloxName(),
			})
			if err != nil {
				return nil, err
			}

			prior, err := s.repo.CountByFormAndUser(ctx, db, form.ID, user.ID)
			if err != nil {
				return nil, err
			}
			if prior >= form.ApplicationLimit {
				return nil, ErrLimitReached
			}

			response := &submissiondb.Response{
				FormID:    form.ID,
				UserID:    user.ID,
				Slot:      prior + 1,
				Responses: answers,
				Status:    submissiondomain.StatusPending,
			}
			if err := s.repo.CreateResponse(ctx, db, response); err != nil {
				if errors.Is(err, submissiondb.ErrDuplicate) {
					return nil, ErrLimitReached
				}
				return nil, err
			}
			response.Form = form
			response.User = user
			return response, nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "Submission stored",
			slog.String("submission_id", response.ID.String()),
			slog.String("form_id", response.FormID.String()),
			slog.String("user_id", user.ID.String()),
			slog.Int("slot", response.Slot),
		)
		s.publish(ctx, submissiondomain.SubmittedTopic, submissiondomain.SubmittedPayload{
			SubmissionID:    response.ID,
			FormID:          response.FormID,
			FormTitle:       response.FormTitle(),
			UserID:          user.ID,
			DiscordUsername: user.DiscordUsername,
			RobloxUsername:  user.RobloxName(),
			Slot:            response.Slot,
			SubmittedAt:     response.CreatedAt,
		})
		return NewSubmissionView(response), nil
	})
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]*SubmissionView, error) {
	return observability.Run(ctx, s.telemetry, "ListMine", userID.String(), func(ctx context.Context) ([]*SubmissionView, error) {
		responses, err := s.repo.ListByUser(ctx, nil, userID)
		if err != nil {
			return nil, err
		}
		out := make([]*SubmissionView, 0, len(responses))
		for i := range responses {
			out = append(out, NewSubmissionView(&responses[i]))
		}
		return out, nil
	})
}

func (s *service) AdminList(ctx context.Context, query AdminQuery) ([]*AdminSubmissionView, error) {
	return observability.Run(ctx, s.telemetry, "AdminList", query.FormID, func(ctx context.Context) ([]*AdminSubmissionView, error) {
		return s.adminList(ctx, query)
	})
}

func (s *service) adminList(ctx context.Context, query AdminQuery) ([]*AdminSubmissionView, error) {
	var filter submissiondb.Filter
	if v := strings.TrimSpace(query.FormID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, ErrFormNotFound
		}
		filter.FormID = &id
	}
	if v := strings.TrimSpace(query.Status); v != "" && !strings.EqualFold(v, "all") {
		status, err := submissiondomain.ParseStatus(v)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	responses, err := s.repo.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*AdminSubmissionView, 0, len(responses))
	for i := range responses {
		out = append(out, NewAdminSubmissionView(&responses[i]))
	}

	key := submissiondomain.ParseSortKey(query.Sort)
	submissiondomain.Sort(out, key, submissiondomain.Descending(query.Order, key))
	return out, nil
}

func (s *service) Review(ctx context.Context, reviewerID uuid.UUID, input ReviewInput) (*ReviewResult, error) {
	return observability.Run(ctx, s.telemetry, "Review", input.SubmissionID, func(ctx context.Context) (*ReviewResult, error) {
		decision, err := submissiondomain.ParseDecision(input.Status)
		if err != nil {
			return nil, err
		}
		id, err := uuid.Parse(strings.TrimSpace(input.SubmissionID))
		if err != nil {
			return nil, ErrSubmissionNotFound
		}

		review := submissiondb.Review{
			Status:     decision,
			Feedback:   DefaultFeedback,
			ReviewedBy: reviewerID,
			ReviewedAt: s.now().UTC(),
		}
		if input.Feedback != nil && strings.TrimSpace(*input.Feedback) != "" {
			review.Feedback = strings.TrimSpace(*input.Feedback)
		}
		var message string
		if input.NotificationMessage != nil {
			message = strings.TrimSpace(*input.NotificationMessage)
		}
		if message != "" {
			review.NotificationMessage = &message
		}

		_, err = bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			current, err := s.repo.GetResponse(ctx, db, id)
			if err != nil {
				if errors.Is(err, submissiondb.ErrNotFound) {
					return struct{}{}, ErrSubmissionNotFound
				}
				return struct{}{}, err
			}
			if current.Status.Reviewed() {
				return struct{}{}, ErrAlreadyReviewed
			}
			if err := s.repo.Review(ctx, db, id, review); err != nil {
				if errors.Is(err, submissiondb.ErrNoRowsAffected) {
					return struct{}{}, ErrAlreadyReviewed
				}
				return struct{}{}, err
			}
			return struct{}{}, nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "Submission reviewed",
			slog.String("submission_id", id.String()),
			slog.String("status", string(decision)),
			slog.String("reviewer_id", reviewerID.String()),
		)

		result := &ReviewResult{Success: true}
		if input.SendNotification && s.notifier != nil {
			outcome := &NotificationOutcome{Sent: true}
			if err := s.notifier.Notify(ctx, id, message); err != nil {
				s.logger.WarnContext(ctx, "Immediate notification failed",
					slog.String("submission_id", id.String()),
					slog.String("error", err.Error()),
				)
				outcome = &NotificationOutcome{Error: err.Error()}
			}
			result.Notification = outcome
		}

		updated, err := s.repo.GetResponse(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		result.Submission = NewAdminSubmissionView(updated)

		s.publish(ctx, submissiondomain.ReviewedTopic, submissiondomain.ReviewedPayload{
			SubmissionID: id,
			FormID:       updated.FormID,
			UserID:       updated.UserID,
			Status:       decision,
			ReviewedBy:   reviewerID,
			ReviewedAt:   review.ReviewedAt,
			Notified:     updated.NotificationSent,
		})
		return result, nil
	})
}

// publish logs delivery failures and never fails the caller.
func (s *service) publish(ctx context.Context, topic string, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
	}
}
