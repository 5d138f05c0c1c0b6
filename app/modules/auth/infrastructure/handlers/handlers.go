package authhandlers

import (
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	authservice "github.com/skyrden-airlines/portal/app/modules/auth/application"
	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
)

// Config holds the HTTP-facing auth settings.
type Config struct {
	FrontendURL   string
	SecureCookies bool
	TokenTTL      time.Duration
	SessionTTL    time.Duration
}

// AuthHandlers implements the Handlers interface.
type AuthHandlers struct {
	service authservice.Service
	users   userservice.Service
	config  Config
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	users userservice.Service,
	cfg Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = authservice.DefaultTokenTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = authservice.DefaultSessionTTL
	}
	return &AuthHandlers{
		service: service,
		users:   users,
		config:  cfg,
		logger:  logger,
		tracer:  tracer,
	}
}
