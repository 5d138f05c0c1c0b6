package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"

	"github.com/skyrden-airlines/portal/app/eventbus"
	authhandlers "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/handlers"
	notificationservice "github.com/skyrden-airlines/portal/app/modules/notification/application"
	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	notificationdiscord "github.com/skyrden-airlines/portal/app/modules/notification/infrastructure/discord"
	notificationhandlers "github.com/skyrden-airlines/portal/app/modules/notification/infrastructure/handlers"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
)

// Module represents the notification module.
type Module struct {
	Service  notificationservice.Service
	handlers notificationhandlers.Handlers
}

// NewModule wires the dispatcher and subscribes it to new submissions so the
// staff channel hears about them.
func NewModule(
	ctx context.Context,
	repo submissiondb.Repository,
	cfg notificationdomain.BotConfig,
	factory notificationdiscord.Factory,
	bus eventbus.EventBus,
	logger *slog.Logger,
	tel observability.Telemetry,
) (*Module, error) {
	logger.InfoContext(ctx, "Initializing notification module", slog.Bool("enabled", cfg.Enabled))

	service := notificationservice.NewService(ctx, repo, cfg, factory, logger, tel)
	if bus != nil {
		if err := bus.Subscribe(ctx, submissiondomain.SubmittedTopic, staffAlertHandler(service)); err != nil {
			return nil, fmt.Errorf("failed to subscribe staff alerts: %w", err)
		}
	}

	return &Module{
		Service:  service,
		handlers: notificationhandlers.NewNotificationHandlers(service, logger),
	}, nil
}

func staffAlertHandler(service notificationservice.Service) eventbus.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		payload, err := eventbus.Decode[submissiondomain.SubmittedPayload](msg)
		if err != nil {
			return err
		}
		return service.AlertStaff(ctx, payload)
	}
}

// RegisterRoutes mounts the admin notification endpoints.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireAdmin)
		r.Get("/api/admin/notifications/config", m.handlers.HandleGetConfig)
		r.Post("/api/admin/notifications/config", m.handlers.HandleUpdateConfig)
		r.Get("/api/admin/notifications/pending", m.handlers.HandleListPending)
		r.Post("/api/admin/notifications/send-all", m.handlers.HandleSendAll)
		r.Post("/api/admin/notifications/{id}/send", m.handlers.HandleSend)
	})
}
