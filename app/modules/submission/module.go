package submission

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	authhandlers "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/handlers"
	submissionservice "github.com/skyrden-airlines/portal/app/modules/submission/application"
	submissionhandlers "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/handlers"
	"github.com/skyrden-airlines/portal/app/shared/observability"
)

// Module represents the submission module.
type Module struct {
	Service  submissionservice.Service
	handlers submissionhandlers.Handlers
}

// NewModule wires the submission service and handlers.
func NewModule(ctx context.Context, deps submissionservice.Deps, logger *slog.Logger, tel observability.Telemetry) *Module {
	logger.InfoContext(ctx, "Initializing submission module")

	service := submissionservice.NewService(deps, logger, tel)
	return &Module{
		Service:  service,
		handlers: submissionhandlers.NewSubmissionHandlers(service, logger),
	}
}

// RegisterRoutes mounts the applicant and reviewer endpoints.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireAuth)
		r.Post("/api/applications/submit", m.handlers.HandleSubmit)
		r.Get("/api/applications/my-applications", m.handlers.HandleMyApplications)
	})

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireAdmin)
		r.Get("/api/admin/applications", m.handlers.HandleAdminList)
		r.Get("/api/admin/applications/export", m.handlers.HandleExport)
		r.Post("/api/admin/review", m.handlers.HandleReview)
	})
}
