package notificationservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	notificationdiscord "github.com/skyrden-airlines/portal/app/modules/notification/infrastructure/discord"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
)

// dispatcher implements Service. The bot config and the client built from
// its token are replaced together under mu.
type dispatcher struct {
	repo      submissiondb.Repository
	factory   notificationdiscord.Factory
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time

	mu     sync.RWMutex
	config notificationdomain.BotConfig
	sender notificationdiscord.Sender
}

// NewService creates the dispatcher. A client is built when cfg carries a
// token; a failure there leaves notifications unavailable until the token is
// updated.
func NewService(
	ctx context.Context,
	repo submissiondb.Repository,
	cfg notificationdomain.BotConfig,
	factory notificationdiscord.Factory,
	logger *slog.Logger,
	tel observability.Telemetry,
) Service {
	if factory == nil {
		factory = notificationdiscord.NewSender
	}
	tel.Service = "NotificationService"
	tel.Logger = logger
	d := &dispatcher{
		repo:      repo,
		factory:   factory,
		logger:    logger,
		telemetry: tel,
		now:       time.Now,
		config:    cfg,
	}
	if cfg.BotToken != "" {
		sender, err := factory(cfg.BotToken)
		if err != nil {
			logger.WarnContext(ctx, "Discord client unavailable", slog.String("error", err.Error()))
		} else {
			d.sender = sender
		}
	}
	return d
}

// client returns the sender and config in use, or ErrNotificationsDisabled.
func (d *dispatcher) client() (notificationdiscord.Sender, notificationdomain.BotConfig, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.config.Enabled || d.sender == nil {
		return nil, d.config, ErrNotificationsDisabled
	}
	return d.sender, d.config, nil
}

func (d *dispatcher) Notify(ctx context.Context, submissionID uuid.UUID, message string) error {
	_, err := observability.Run(ctx, d.telemetry, "Notify", submissionID.String(), func(ctx context.Context) (struct{}, error) {
		sender, cfg, err := d.client()
		if err != nil {
			return struct{}{}, err
		}
		response, err := d.repo.GetResponse(ctx, nil, submissionID)
		if err != nil {
			if errors.Is(err, submissiondb.ErrNotFound) {
				return struct{}{}, ErrSubmissionNotFound
			}
			return struct{}{}, err
		}
		return struct{}{}, d.deliver(ctx, sender, cfg, response, message)
	})
	return err
}

// deliver sends the DM for response and records it.
func (d *dispatcher) deliver(ctx context.Context, sender notificationdiscord.Sender, cfg notificationdomain.BotConfig, response *submissiondb.Response, message string) error {
	if !response.Status.Reviewed() || response.ReviewedAt == nil {
		return ErrNotReviewed
	}
	applicant := response.Applicant()
	if applicant == nil {
		return ErrDeliveryFailed.WithMessage("applicant account not found")
	}

	text := strings.TrimSpace(message)
	if text == "" && response.NotificationMessage != nil {
		text = *response.NotificationMessage
	}
	if text == "" {
		text = cfg.Template()
	}

	if err := sender.SendDM(ctx, applicant.DiscordID, reviewEmbed(response, text)); err != nil {
		d.logger.WarnContext(ctx, "Discord DM failed",
			slog.String("submission_id", response.ID.String()),
			slog.String("discord_id", applicant.DiscordID),
			slog.String("error", err.Error()),
		)
		return ErrDeliveryFailed.WithMessage(fmt.Sprintf("failed to deliver discord notification: %v", err))
	}

	if err := d.repo.MarkNotificationSent(ctx, nil, response.ID, d.now().UTC()); err != nil {
		return fmt.Errorf("notification sent but not recorded: %w", err)
	}
	d.logger.InfoContext(ctx, "Notification sent",
		slog.String("submission_id", response.ID.String()),
		slog.String("status", string(response.Status)),
	)
	return nil
}

func (d *dispatcher) SendAllPending(ctx context.Context) (*BulkResult, error) {
	return observability.Run(ctx, d.telemetry, "SendAllPending", "", func(ctx context.Context) (*BulkResult, error) {
		sender, cfg, err := d.client()
		if err != nil {
			return nil, err
		}
		pending, err := d.repo.ListUnnotified(ctx, nil)
		if err != nil {
			return nil, err
		}

		result := &BulkResult{Failures: []BulkFailure{}}
		for i := range pending {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := d.deliver(ctx, sender, cfg, &pending[i], ""); err != nil {
				result.FailedCount++
				result.Failures = append(result.Failures, BulkFailure{SubmissionID: pending[i].ID, Error: err.Error()})
				continue
			}
			result.SuccessCount++
		}

		d.logger.InfoContext(ctx, "Bulk notification finished",
			slog.Int("success_count", result.SuccessCount),
			slog.Int("failed_count", result.FailedCount),
		)
		return result, nil
	})
}

func (d *dispatcher) ListPending(ctx context.Context) ([]*PendingView, error) {
	return observability.Run(ctx, d.telemetry, "ListPending", "", func(ctx context.Context) ([]*PendingView, error) {
		pending, err := d.repo.ListUnnotified(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := make([]*PendingView, 0, len(pending))
		for i := range pending {
			r := &pending[i]
			v := &PendingView{
				SubmissionID: r.ID,
				FormTitle:    r.FormTitle(),
				Status:       r.Status,
				ReviewedAt:   r.ReviewedAt,
			}
			if u := r.Applicant(); u != nil {
				v.DiscordID, v.DiscordUsername = u.DiscordID, u.DiscordUsername
			}
			out = append(out, v)
		}
		return out, nil
	})
}

func (d *dispatcher) GetConfig(ctx context.Context) notificationdomain.ConfigView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config.View()
}

func (d *dispatcher) UpdateConfig(ctx context.Context, update notificationdomain.ConfigUpdate) (notificationdomain.ConfigView, error) {
	return observability.Run(ctx, d.telemetry, "UpdateConfig", "", func(ctx context.Context) (notificationdomain.ConfigView, error) {
		d.mu.Lock()
		defer d.mu.Unlock()

		next, tokenChanged, err := d.config.Apply(update)
		if err != nil {
			return d.config.View(), err
		}

		if tokenChanged {
			var sender notificationdiscord.Sender
			if next.BotToken != "" {
				sender, err = d.factory(next.BotToken)
				if err != nil {
					return d.config.View(), ErrDeliveryFailed.WithMessage("failed to create discord client")
				}
			}
			if d.sender != nil {
				if err := d.sender.Close(); err != nil {
					d.logger.WarnContext(ctx, "Failed to close discord client", slog.String("error", err.Error()))
				}
			}
			d.sender = sender
		}
		d.config = next

		d.logger.InfoContext(ctx, "Notification config updated",
			slog.Bool("enabled", next.Enabled),
			slog.Bool("token_changed", tokenChanged),
			slog.Bool("staff_channel", next.StaffChannelID != ""),
		)
		return next.View(), nil
	})
}

func (d *dispatcher) AlertStaff(ctx context.Context, payload submissiondomain.SubmittedPayload) error {
	sender, cfg, err := d.client()
	if err != nil || cfg.StaffChannelID == "" {
		return nil
	}
	if err := sender.SendChannel(ctx, cfg.StaffChannelID, staffEmbed(payload)); err != nil {
		return fmt.Errorf("failed to alert staff channel: %w", err)
	}
	return nil
}
