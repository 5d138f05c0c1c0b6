package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authhandlers "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/handlers"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
	"github.com/skyrden-airlines/portal/app/shared/observability"
)

// Module is implemented by every module that serves HTTP.
type Module interface {
	RegisterRoutes(r chi.Router)
}

// Router builds the HTTP handler for every module.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if app.Config.Observability.MetricsEnabled {
		r.Use(observability.NewHTTPMetrics(app.Registry).Middleware)
	}
	r.Use(authhandlers.CORSMiddleware(app.Config.HTTP.AllowedOrigins))
	r.Use(app.AuthModule.Authenticate)

	r.Get("/healthz", app.handleHealth)
	if app.Config.Observability.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", observability.Handler(app.Registry))
	}

	for _, m := range []Module{
		app.AuthModule,
		app.UserModule,
		app.FormModule,
		app.SubmissionModule,
		app.NotificationModule,
	} {
		m.RegisterRoutes(r)
	}
	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.DB.PingContext(ctx); err != nil {
		app.Logger.WarnContext(ctx, "Health check failed", slog.String("error", err.Error()))
		httpjson.Write(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unavailable"})
		return
	}
	httpjson.Write(w, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
