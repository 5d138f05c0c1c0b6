package authhandlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	authservice "github.com/skyrden-airlines/portal/app/modules/auth/application"
	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

// ------------------------
// Fake Auth Service
// ------------------------

type FakeService struct {
	DiscordLoginURLFunc      func(ctx context.Context, redirect string) (*authservice.AuthorizeRedirect, error)
	CompleteDiscordLoginFunc func(ctx context.Context, req authservice.CallbackRequest, meta authservice.SessionMeta) (*authservice.LoginResult, error)
	RobloxLinkURLFunc        func(ctx context.Context, caller *authdomain.Identity) (*authservice.AuthorizeRedirect, error)
	CompleteRobloxLinkFunc   func(ctx context.Context, req authservice.CallbackRequest) (*authservice.LoginResult, error)
	GitHubLinkURLFunc        func(ctx context.Context, caller *authdomain.Identity) (string, error)
	CompleteGitHubLinkFunc   func(ctx context.Context, code, state string) (*userdb.User, error)
	TokenLoginFunc           func(ctx context.Context, token string, meta authservice.SessionMeta) (*authservice.LoginResult, error)
	LogoutFunc               func(ctx context.Context, sessionToken string) error
	ResolveIdentityFunc      func(ctx context.Context, creds authservice.Credentials, meta authservice.SessionMeta) (*authservice.Resolution, error)

	LastCallback authservice.CallbackRequest
	LastCreds    authservice.Credentials
}

func (f *FakeService) DiscordLoginURL(ctx context.Context, redirect string) (*authservice.AuthorizeRedirect, error) {
	if f.DiscordLoginURLFunc != nil {
		return f.DiscordLoginURLFunc(ctx, redirect)
	}
	return &authservice.AuthorizeRedirect{URL: "https://discord.test/authorize", Nonce: "nonce-1"}, nil
}

func (f *FakeService) CompleteDiscordLogin(ctx context.Context, req authservice.CallbackRequest, meta authservice.SessionMeta) (*authservice.LoginResult, error) {
	f.LastCallback = req
	if f.CompleteDiscordLoginFunc != nil {
		return f.CompleteDiscordLoginFunc(ctx, req, meta)
	}
	return nil, authservice.ErrInvalidState
}

func (f *FakeService) RobloxLinkURL(ctx context.Context, caller *authdomain.Identity) (*authservice.AuthorizeRedirect, error) {
	if f.RobloxLinkURLFunc != nil {
		return f.RobloxLinkURLFunc(ctx, caller)
	}
	return &authservice.AuthorizeRedirect{URL: "https://roblox.test/authorize", Nonce: "nonce-2"}, nil
}

func (f *FakeService) CompleteRobloxLink(ctx context.Context, req authservice.CallbackRequest) (*authservice.LoginResult, error) {
	f.LastCallback = req
	if f.CompleteRobloxLinkFunc != nil {
		return f.CompleteRobloxLinkFunc(ctx, req)
	}
	return nil, authservice.ErrInvalidState
}

func (f *FakeService) GitHubLinkURL(ctx context.Context, caller *authdomain.Identity) (string, error) {
	if f.GitHubLinkURLFunc != nil {
		return f.GitHubLinkURLFunc(ctx, caller)
	}
	return "https://github.test/authorize", nil
}

func (f *FakeService) CompleteGitHubLink(ctx context.Context, code, state string) (*userdb.User, error) {
	if f.CompleteGitHubLinkFunc != nil {
		return f.CompleteGitHubLinkFunc(ctx, code, state)
	}
	return nil, authservice.ErrInvalidState
}

func (f *FakeService) TokenLogin(ctx context.Context, token string, meta authservice.SessionMeta) (*authservice.LoginResult, error) {
	if f.TokenLoginFunc != nil {
		return f.TokenLoginFunc(ctx, token, meta)
	}
	return nil, authservice.ErrInvalidToken
}

func (f *FakeService) Logout(ctx context.Context, sessionToken string) error {
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx, sessionToken)
	}
	return nil
}

func (f *FakeService) ResolveIdentity(ctx context.Context, creds authservice.Credentials, meta authservice.SessionMeta) (*authservice.Resolution, error) {
	f.LastCreds = creds
	if f.ResolveIdentityFunc != nil {
		return f.ResolveIdentityFunc(ctx, creds, meta)
	}
	return &authservice.Resolution{}, nil
}

var _ authservice.Service = (*FakeService)(nil)

// ------------------------
// Fake User Service
// ------------------------

type FakeUserService struct {
	GetUserFunc func(ctx context.Context, id uuid.UUID) (*userdb.User, error)
}

func (f *FakeUserService) UpsertDiscordUser(ctx context.Context, profile userservice.DiscordProfile) (*userdb.User, error) {
	return nil, nil
}

func (f *FakeUserService) GetUser(ctx context.Context, id uuid.UUID) (*userdb.User, error) {
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, id)
	}
	return nil, userservice.ErrUserNotFound
}

func (f *FakeUserService) LinkRoblox(ctx context.Context, userID uuid.UUID, robloxID, robloxUsername string) (*userdb.User, error) {
	return nil, nil
}

func (f *FakeUserService) LinkGitHub(ctx context.Context, userID uuid.UUID, githubID, githubUsername string) (*userdb.User, error) {
	return nil, nil
}

func (f *FakeUserService) ListWhitelist(ctx context.Context) ([]userdb.AdminWhitelistEntry, error) {
	return nil, nil
}

func (f *FakeUserService) AddToWhitelist(ctx context.Context, discordID, note string, addedBy *uuid.UUID) (*userdb.AdminWhitelistEntry, error) {
	return nil, nil
}

func (f *FakeUserService) RemoveFromWhitelist(ctx context.Context, discordID string) error {
	return nil
}

func (f *FakeUserService) SeedBootstrapAdmins(ctx context.Context, discordIDs []string) error {
	return nil
}

func (f *FakeUserService) PurgeExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

var _ userservice.Service = (*FakeUserService)(nil)
