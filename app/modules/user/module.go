package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	authhandlers "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/handlers"
	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
	userhandlers "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/handlers"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/config"
)

// Module represents the user module.
type Module struct {
	Repository userdb.Repository
	Service    userservice.Service
	handlers   userhandlers.Handlers
	logger     *slog.Logger
}

// NewModule wires the user module and seeds the bootstrap admins.
func NewModule(ctx context.Context, cfg *config.Config, db *bun.DB, logger *slog.Logger, tel observability.Telemetry) (*Module, error) {
	logger.InfoContext(ctx, "Initializing user module")

	repo := userdb.NewRepository(db)
	service := userservice.NewService(repo, db, logger, tel)

	if len(cfg.Auth.BootstrapAdmins) > 0 {
		if err := service.SeedBootstrapAdmins(ctx, cfg.Auth.BootstrapAdmins); err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "Bootstrap admins seeded", slog.Int("count", len(cfg.Auth.BootstrapAdmins)))
	}

	if _, err := service.PurgeExpiredSessions(ctx, time.Now()); err != nil {
		return nil, err
	}

	return &Module{
		Repository: repo,
		Service:    service,
		handlers:   userhandlers.NewUserHandlers(service, logger),
		logger:     logger,
	}, nil
}

// RegisterRoutes mounts the admin whitelist endpoints.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireAdmin)
		r.Get("/api/admin/whitelist", m.handlers.HandleListWhitelist)
		r.Post("/api/admin/whitelist", m.handlers.HandleAddWhitelist)
		r.Delete("/api/admin/whitelist/{discord_id}", m.handlers.HandleRemoveWhitelist)
	})
}
