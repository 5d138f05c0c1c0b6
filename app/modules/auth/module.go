package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/skyrden-airlines/portal/app/modules/auth/application"
	authhandlers "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/jwt"
	authoauth "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/oauth"
	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/config"
)

// Module represents the auth module.
type Module struct {
	config   *config.Config
	service  authservice.Service
	handlers authhandlers.Handlers
	limiter  *authhandlers.IPRateLimiter
	logger   *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	users userservice.Service,
	userRepo userdb.Repository,
	logger *slog.Logger,
	tel observability.Telemetry,
) *Module {
	logger.InfoContext(ctx, "Initializing auth module",
		slog.Bool("roblox_enabled", cfg.Roblox.Configured()),
		slog.Bool("github_enabled", cfg.GitHub.Configured()),
	)

	providers := authservice.Providers{Discord: authoauth.NewDiscord(cfg.Discord)}
	if cfg.Roblox.Configured() {
		providers.Roblox = authoauth.NewRoblox(cfg.Roblox)
	}
	if cfg.GitHub.Configured() {
		providers.GitHub = authoauth.NewGitHub(cfg.GitHub)
	}

	stateSecret := cfg.Auth.StateSecret
	if stateSecret == "" {
		stateSecret = cfg.Auth.JWTSecret
	}

	service := authservice.NewService(
		users,
		userRepo,
		authjwt.NewProvider(cfg.Auth.JWTSecret),
		authjwt.NewStateCodec(stateSecret),
		providers,
		authservice.Config{TokenTTL: cfg.Auth.TokenTTL, SessionTTL: cfg.Auth.SessionTTL},
		logger,
		tel,
	)

	handlers := authhandlers.NewAuthHandlers(service, users, authhandlers.Config{
		FrontendURL:   cfg.HTTP.FrontendURL,
		SecureCookies: cfg.HTTP.SecureCookies,
		TokenTTL:      cfg.Auth.TokenTTL,
		SessionTTL:    cfg.Auth.SessionTTL,
	}, logger, tel.Tracer)

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		limiter:  authhandlers.NewIPRateLimiter(5, 10),
		logger:   logger,
	}
}

// Authenticate is the identity middleware every route runs behind.
func (m *Module) Authenticate(next http.Handler) http.Handler {
	return m.handlers.Authenticate(next)
}

// RegisterRoutes mounts /api/auth.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(authhandlers.RateLimitMiddleware(m.limiter))

		// Public routes
		r.Get("/status", m.handlers.HandleStatus)
		r.Get("/discord", m.handlers.HandleDiscordLogin)
		r.Get("/discord/callback", m.handlers.HandleDiscordCallback)
		r.Get("/roblox/callback", m.handlers.HandleRobloxCallback)
		r.Get("/github-callback", m.handlers.HandleGitHubCallback)
		r.Post("/token-login", m.handlers.HandleTokenLogin)
		r.Post("/logout", m.handlers.HandleLogout)

		// Linking requires a signed-in user
		r.Group(func(r chi.Router) {
			r.Use(authhandlers.RequireAuth)
			r.Get("/roblox", m.handlers.HandleRobloxLink)
			r.Get("/github-link", m.handlers.HandleGitHubLink)
		})
	})
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
