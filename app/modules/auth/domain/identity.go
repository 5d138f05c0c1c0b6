package authdomain

import (
	"context"

	"github.com/google/uuid"
)

// Source records how an identity was established.
type Source string

const (
	SourceSession Source = "session"
	SourceCookie  Source = "cookie"
	SourceBearer  Source = "bearer"
)

// Identity is the authenticated caller of a request. Session identities are
// read from the users table on every request. Token identities carry the
// claims the token was minted with and can lag behind whitelist changes
// until the token expires.
type Identity struct {
	UserID         uuid.UUID
	DiscordID      string
	Username       string
	IsAdmin        bool
	RobloxUsername string
	Source         Source
}

// HasRoblox reports whether the caller has a linked Roblox account.
func (i *Identity) HasRoblox() bool {
	return i.RobloxUsername != ""
}

type identityKey struct{}

// WithIdentity stores id on ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller, or nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
