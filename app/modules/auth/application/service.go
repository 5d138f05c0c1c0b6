package authservice

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	authjwt "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/jwt"
	authoauth "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/oauth"
	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
)

const (
	DefaultTokenTTL   = 7 * 24 * time.Hour
	DefaultSessionTTL = 7 * 24 * time.Hour

	loginStateTTL      = 10 * time.Minute
	githubLinkStateTTL = time.Hour
)

// Config holds the configuration for the auth service.
type Config struct {
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

// Providers are the OAuth clients. Roblox and GitHub may be nil when not
// configured.
type Providers struct {
	Discord authoauth.Provider
	Roblox  authoauth.Provider
	GitHub  authoauth.Provider
}

// service implements the Service interface.
type service struct {
	users     userservice.Service
	repo      userdb.Repository
	tokens    authjwt.Provider
	states    authjwt.StateCodec
	providers Providers
	config    Config
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time
}

// NewService creates a new auth service.
func NewService(
	users userservice.Service,
	repo userdb.Repository,
	tokens authjwt.Provider,
	states authjwt.StateCodec,
	providers Providers,
	cfg Config,
	logger *slog.Logger,
	tel observability.Telemetry,
) Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	tel.Service = "AuthService"
	tel.Logger = logger
	return &service{
		users:     users,
		repo:      repo,
		tokens:    tokens,
		states:    states,
		providers: providers,
		config:    cfg,
		logger:    logger,
		telemetry: tel,
		now:       time.Now,
	}
}

// generateRandomToken creates a secure random token.
func generateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashToken hashes a token for secure storage.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// SanitizeRedirect keeps only same-site absolute paths.
func SanitizeRedirect(redirect string) string {
	if !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") || strings.Contains(redirect, `\`) {
		return "/"
	}
	return redirect
}

func (s *service) DiscordLoginURL(ctx context.Context, redirect string) (*AuthorizeRedirect, error) {
	return observability.Run(ctx, s.telemetry, "DiscordLoginURL", "", func(ctx context.Context) (*AuthorizeRedirect, error) {
		return s.authorize(s.providers.Discord, authdomain.OAuthState{
			Purpose:   authdomain.PurposeDiscordLogin,
			Redirect:  SanitizeRedirect(redirect),
			ExpiresAt: s.now().Add(loginStateTTL),
		})
	})
}

func (s *service) RobloxLinkURL(ctx context.Context, caller *authdomain.Identity) (*AuthorizeRedirect, error) {
	return observability.Run(ctx, s.telemetry, "RobloxLinkURL", caller.UserID.String(), func(ctx context.Context) (*AuthorizeRedirect, error) {
		return s.authorize(s.providers.Roblox, authdomain.OAuthState{
			Purpose:   authdomain.PurposeRobloxLink,
			UserID:    caller.UserID.String(),
			DiscordID: caller.DiscordID,
			ExpiresAt: s.now().Add(loginStateTTL),
		})
	})
}

// GitHubLinkURL has no nonce cookie: the callback may arrive in a browser
// context without the portal's cookies, so the signed state is the only proof.
func (s *service) GitHubLinkURL(ctx context.Context, caller *authdomain.Identity) (string, error) {
	return observability.Run(ctx, s.telemetry, "GitHubLinkURL", caller.UserID.String(), func(ctx context.Context) (string, error) {
		redirect, err := s.authorize(s.providers.GitHub, authdomain.OAuthState{
			Purpose:   authdomain.PurposeGitHubLink,
			UserID:    caller.UserID.String(),
			DiscordID: caller.DiscordID,
			ExpiresAt: s.now().Add(githubLinkStateTTL),
		})
		if err != nil {
			return "", err
		}
		return redirect.URL, nil
	})
}

func (s *service) authorize(p authoauth.Provider, state authdomain.OAuthState) (*AuthorizeRedirect, error) {
	if p == nil {
		return nil, ErrProviderUnavailable
	}
	state.Nonce = uuid.NewString()
	signed, err := s.states.Sign(state)
	if err != nil {
		return nil, err
	}
	return &AuthorizeRedirect{URL: p.AuthCodeURL(signed), Nonce: state.Nonce}, nil
}

// verifyState checks signature, expiry and purpose, and when pinCookie is
// set, that the nonce matches the cookie set at authorize time.
func (s *service) verifyState(raw string, purpose authdomain.StatePurpose, nonceCookie string, pinCookie bool) (*authdomain.OAuthState, error) {
	if raw == "" {
		return nil, ErrInvalidState
	}
	state, err := s.states.Parse(raw, purpose)
	if err != nil {
		return nil, ErrInvalidState.WithMessage(fmt.Sprintf("invalid oauth state: %v", err))
	}
	if pinCookie && (nonceCookie == "" || nonceCookie != state.Nonce) {
		return nil, ErrInvalidState.WithMessage("oauth state does not match this browser")
	}
	return state, nil
}

func (s *service) authenticate(ctx context.Context, p authoauth.Provider, code string) (*authoauth.Profile, error) {
	if p == nil {
		return nil, ErrProviderUnavailable
	}
	if code == "" {
		return nil, ErrExchangeFailed.WithMessage("authorization code is missing")
	}
	profile, err := p.Authenticate(ctx, code)
	switch {
	case errors.Is(err, authoauth.ErrExchangeFailed):
		s.logger.WarnContext(ctx, "OAuth exchange failed", slog.String("provider", p.Name()), slog.String("error", err.Error()))
		return nil, ErrExchangeFailed
	case err != nil:
		s.logger.WarnContext(ctx, "OAuth profile fetch failed", slog.String("provider", p.Name()), slog.String("error", err.Error()))
		return nil, ErrProfileFailed
	}
	return profile, nil
}

func (s *service) CompleteDiscordLogin(ctx context.Context, req CallbackRequest, meta SessionMeta) (*LoginResult, error) {
	return observability.Run(ctx, s.telemetry, "CompleteDiscordLogin", "", func(ctx context.Context) (*LoginResult, error) {
		state, err := s.verifyState(req.State, authdomain.PurposeDiscordLogin, req.NonceCookie, true)
		if err != nil {
			return nil, err
		}
		profile, err := s.authenticate(ctx, s.providers.Discord, req.Code)
		if err != nil {
			return nil, err
		}

		user, err := s.users.UpsertDiscordUser(ctx, userservice.DiscordProfile{
			ID:       profile.ID,
			Username: profile.Username,
			Avatar:   profile.Avatar,
		})
		if err != nil {
			return nil, err
		}

		result, err := s.login(ctx, user, meta)
		if err != nil {
			return nil, err
		}
		result.Redirect = state.Redirect

		s.logger.InfoContext(ctx, "Discord login completed",
			slog.String("user_id", user.ID.String()),
			slog.Bool("is_admin", user.IsAdmin),
		)
		return result, nil
	})
}

func (s *service) CompleteRobloxLink(ctx context.Context, req CallbackRequest) (*LoginResult, error) {
	return observability.Run(ctx, s.telemetry, "CompleteRobloxLink", "", func(ctx context.Context) (*LoginResult, error) {
		state, err := s.verifyState(req.State, authdomain.PurposeRobloxLink, req.NonceCookie, true)
		if err != nil {
			return nil, err
		}
		userID, err := uuid.Parse(state.UserID)
		if err != nil {
			return nil, ErrInvalidState
		}
		profile, err := s.authenticate(ctx, s.providers.Roblox, req.Code)
		if err != nil {
			return nil, err
		}

		user, err := s.users.LinkRoblox(ctx, userID, profile.ID, profile.Username)
		if err != nil {
			return nil, err
		}
		token, err := s.issueToken(user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{User: user, Token: token}, nil
	})
}

func (s *service) CompleteGitHubLink(ctx context.Context, code, rawState string) (*userdb.User, error) {
	return observability.Run(ctx, s.telemetry, "CompleteGitHubLink", "", func(ctx context.Context) (*userdb.User, error) {
		state, err := s.verifyState(rawState, authdomain.PurposeGitHubLink, "", false)
		if err != nil {
			return nil, err
		}
		userID, err := uuid.Parse(state.UserID)
		if err != nil {
			return nil, ErrInvalidState
		}
		profile, err := s.authenticate(ctx, s.providers.GitHub, code)
		if err != nil {
			return nil, err
		}
		return s.users.LinkGitHub(ctx, userID, profile.ID, profile.Username)
	})
}

func (s *service) TokenLogin(ctx context.Context, token string, meta SessionMeta) (*LoginResult, error) {
	return observability.Run(ctx, s.telemetry, "TokenLogin", "", func(ctx context.Context) (*LoginResult, error) {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, ErrMissingToken
		}
		claims, err := s.tokens.ValidateToken(token)
		if err != nil {
			return nil, ErrInvalidToken
		}
		user, err := s.repo.GetUserByID(ctx, nil, claims.UserID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return nil, ErrInvalidToken
			}
			return nil, err
		}
		return s.login(ctx, user, meta)
	})
}

func (s *service) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	_, err := observability.Run(ctx, s.telemetry, "Logout", "", func(ctx context.Context) (struct{}, error) {
		err := s.repo.RevokeSession(ctx, nil, hashToken(sessionToken), s.now().UTC())
		if err != nil && !errors.Is(err, userdb.ErrNoRowsAffected) {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	return err
}

// login issues a fresh token and session for user.
func (s *service) login(ctx context.Context, user *userdb.User, meta SessionMeta) (*LoginResult, error) {
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	session, err := s.openSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.PurgeExpiredSessions(ctx, s.now()); err != nil {
		s.logger.WarnContext(ctx, "Failed to purge expired sessions", slog.String("error", err.Error()))
	}
	return &LoginResult{User: user, Token: token, Session: session}, nil
}

func (s *service) issueToken(user *userdb.User) (string, error) {
	return s.tokens.GenerateToken(&authdomain.Claims{
		UserID:         user.ID,
		DiscordID:      user.DiscordID,
		Username:       user.DiscordUsername,
		IsAdmin:        user.IsAdmin,
		RobloxUsername: user.RobloxName(),
	}, s.config.TokenTTL)
}

func (s *service) openSession(ctx context.Context, userID uuid.UUID, meta SessionMeta) (*IssuedSession, error) {
	raw, err := generateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	now := s.now().UTC()
	session := &userdb.Session{
		Hash:       hashToken(raw),
		UserID:     userID,
		ExpiresAt:  now.Add(s.config.SessionTTL),
		CreatedAt:  now,
		LastSeenAt: &now,
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if err := s.repo.SaveSession(ctx, nil, session); err != nil {
		return nil, err
	}
	return &IssuedSession{Token: raw, ExpiresAt: session.ExpiresAt}, nil
}
