package authservice

import (
	"context"
	"time"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

// Service defines the authentication service interface.
type Service interface {
	// DiscordLoginURL starts a Discord login that returns to redirect.
	DiscordLoginURL(ctx context.Context, redirect string) (*AuthorizeRedirect, error)

	// CompleteDiscordLogin verifies state, exchanges code, upserts the user,
	// reconciles admin and opens a session.
	CompleteDiscordLogin(ctx context.Context, req CallbackRequest, meta SessionMeta) (*LoginResult, error)

	// RobloxLinkURL starts linking a Roblox account to the caller.
	RobloxLinkURL(ctx context.Context, caller *authdomain.Identity) (*AuthorizeRedirect, error)

	// CompleteRobloxLink stores the Roblox identity and re-issues the token.
	CompleteRobloxLink(ctx context.Context, req CallbackRequest) (*LoginResult, error)

	// GitHubLinkURL starts the stateless GitHub linking flow.
	GitHubLinkURL(ctx context.Context, caller *authdomain.Identity) (string, error)

	// CompleteGitHubLink needs no session; the signed state carries the user.
	CompleteGitHubLink(ctx context.Context, code, state string) (*userdb.User, error)

	// TokenLogin exchanges a valid token for a session.
	TokenLogin(ctx context.Context, token string, meta SessionMeta) (*LoginResult, error)

	// Logout revokes the session behind sessionToken, if any.
	Logout(ctx context.Context, sessionToken string) error

	// ResolveIdentity never fails on bad credentials: it returns a nil
	// identity instead.
	ResolveIdentity(ctx context.Context, creds Credentials, meta SessionMeta) (*Resolution, error)
}

// AuthorizeRedirect is where to send the browser, plus the nonce to pin in
// a cookie for the callback.
type AuthorizeRedirect struct {
	URL   string
	Nonce string
}

// CallbackRequest is the provider callback input.
type CallbackRequest struct {
	Code        string
	State       string
	NonceCookie string
}

// SessionMeta describes the client that opened a session.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// IssuedSession is a freshly created session cookie value.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// LoginResult is the outcome of a successful login or re-issue.
type LoginResult struct {
	User     *userdb.User
	Token    string
	Session  *IssuedSession
	Redirect string
}

// Credentials are the raw values a request may carry.
type Credentials struct {
	SessionToken string
	CookieToken  string
	BearerToken  string
}

// Resolution is the resolved caller. NewSession is set when a valid token
// cookie had no live session and one was created.
type Resolution struct {
	Identity   *authdomain.Identity
	NewSession *IssuedSession
}
