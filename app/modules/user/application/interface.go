package userservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

// Service manages accounts and the admin whitelist.
type Service interface {
	// UpsertDiscordUser creates or refreshes the user for a Discord login and
	// reconciles is_admin with the whitelist.
	UpsertDiscordUser(ctx context.Context, profile DiscordProfile) (*userdb.User, error)

	GetUser(ctx context.Context, id uuid.UUID) (*userdb.User, error)

	LinkRoblox(ctx context.Context, userID uuid.UUID, robloxID, robloxUsername string) (*userdb.User, error)
	LinkGitHub(ctx context.Context, userID uuid.UUID, githubID, githubUsername string) (*userdb.User, error)

	ListWhitelist(ctx context.Context) ([]userdb.AdminWhitelistEntry, error)
	AddToWhitelist(ctx context.Context, discordID, note string, addedBy *uuid.UUID) (*userdb.AdminWhitelistEntry, error)
	RemoveFromWhitelist(ctx context.Context, discordID string) error

	// SeedBootstrapAdmins whitelists the given ids, skipping ones already present.
	SeedBootstrapAdmins(ctx context.Context, discordIDs []string) error

	// PurgeExpiredSessions deletes sessions that expired before the cutoff.
	PurgeExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// DiscordProfile is the identity returned by Discord's /users/@me.
type DiscordProfile struct {
	ID       string
	Username string
	Avatar   string
}
