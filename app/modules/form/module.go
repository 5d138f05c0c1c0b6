package form

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	authhandlers "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/handlers"
	formservice "github.com/skyrden-airlines/portal/app/modules/form/application"
	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formhandlers "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/handlers"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
)

// Module represents the form catalog module.
type Module struct {
	Repository formdb.Repository
	Service    formservice.Service
	handlers   formhandlers.Handlers
}

// NewModule wires the form module. responses reports submission counts so
// forms with answers are closed instead of deleted.
func NewModule(ctx context.Context, db *bun.DB, repo formdb.Repository, responses formservice.ResponseCounter, logger *slog.Logger, tel observability.Telemetry) *Module {
	logger.InfoContext(ctx, "Initializing form module")

	if repo == nil {
		repo = formdb.NewRepository(db)
	}
	service := formservice.NewService(repo, responses, db, formdomain.RealClock{}, logger, tel)

	return &Module{
		Repository: repo,
		Service:    service,
		handlers:   formhandlers.NewFormHandlers(service, logger),
	}
}

// RegisterRoutes mounts the public template endpoints and the admin form CRUD.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/api/applications/templates", m.handlers.HandleListTemplates)
	r.Get("/api/applications/templates/{id}", m.handlers.HandleGetTemplate)

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireAdmin)
		r.Post("/api/applications/templates", m.handlers.HandleCreateForm)
		r.Get("/api/admin/forms", m.handlers.HandleListForms)
		r.Post("/api/admin/forms", m.handlers.HandleCreateForm)
		r.Get("/api/admin/forms/{id}", m.handlers.HandleGetForm)
		r.Put("/api/admin/forms/{id}", m.handlers.HandleUpdateForm)
		r.Delete("/api/admin/forms/{id}", m.handlers.HandleDeleteForm)
	})
}
