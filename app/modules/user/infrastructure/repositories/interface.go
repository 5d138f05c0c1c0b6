package userdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists users, the admin whitelist and sessions. Every method
// takes an optional bun.IDB so callers can run it inside their transaction.
type Repository interface {
	// Users
	GetUserByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error)
	GetUserByDiscordID(ctx context.Context, db bun.IDB, discordID string) (*User, error)
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
	UpdateDiscordProfile(ctx context.Context, db bun.IDB, user *User) error
	SetAdminByDiscordID(ctx context.Context, db bun.IDB, discordID string, isAdmin bool) error
	LinkRoblox(ctx context.Context, db bun.IDB, userID uuid.UUID, robloxID, robloxUsername string) error
	LinkGitHub(ctx context.Context, db bun.IDB, userID uuid.UUID, githubID, githubUsername string) error

	// Admin whitelist
	ListWhitelist(ctx context.Context, db bun.IDB) ([]AdminWhitelistEntry, error)
	IsWhitelisted(ctx context.Context, db bun.IDB, discordID string) (bool, error)
	AddWhitelistEntry(ctx context.Context, db bun.IDB, entry *AdminWhitelistEntry) error
	RemoveWhitelistEntry(ctx context.Context, db bun.IDB, discordID string) error

	// Sessions
	SaveSession(ctx context.Context, db bun.IDB, session *Session) error
	GetSession(ctx context.Context, db bun.IDB, hash string) (*Session, error)
	TouchSession(ctx context.Context, db bun.IDB, hash string, at time.Time) error
	RevokeSession(ctx context.Context, db bun.IDB, hash string, at time.Time) error
	DeleteExpiredSessions(ctx context.Context, db bun.IDB, before time.Time) (int64, error)
}
