package userdb

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is an account keyed by Discord identity. Rows are never hard-deleted.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID              uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	DiscordID       string    `bun:"discord_id,notnull,unique" json:"discord_id"`
	DiscordUsername string    `bun:"discord_username,notnull" json:"discord_username"`
	DiscordAvatar   *string   `bun:"discord_avatar,nullzero" json:"discord_avatar,omitempty"`
	RobloxID        *string   `bun:"roblox_id,nullzero" json:"roblox_id,omitempty"`
	RobloxUsername  *string   `bun:"roblox_username,nullzero" json:"roblox_username,omitempty"`
	GitHubID        *string   `bun:"github_id,nullzero" json:"github_id,omitempty"`
	GitHubUsername  *string   `bun:"github_username,nullzero" json:"github_username,omitempty"`
	IsAdmin         bool      `bun:"is_admin,notnull,default:false" json:"is_admin"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// AdminWhitelistEntry grants admin to a Discord id.
type AdminWhitelistEntry struct {
	bun.BaseModel `bun:"table:admin_whitelist,alias:aw"`

	DiscordID string     `bun:"discord_id,pk" json:"discord_id"`
	Note      string     `bun:"note,notnull,default:''" json:"note"`
	AddedBy   *uuid.UUID `bun:"added_by,type:varchar(36),nullzero" json:"added_by,omitempty"`
	AddedAt   time.Time  `bun:"added_at,notnull" json:"added_at"`
}

// Session is a server-side login session. Only the sha256 of the cookie
// value is stored.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	Hash       string     `bun:"hash,pk"`
	UserID     uuid.UUID  `bun:"user_id,notnull,type:varchar(36)"`
	ExpiresAt  time.Time  `bun:"expires_at,notnull"`
	CreatedAt  time.Time  `bun:"created_at,notnull"`
	LastSeenAt *time.Time `bun:"last_seen_at,nullzero"`
	IPAddress  *string    `bun:"ip_address,nullzero"`
	UserAgent  *string    `bun:"user_agent,nullzero"`
	Revoked    bool       `bun:"revoked,notnull,default:false"`
	RevokedAt  *time.Time `bun:"revoked_at,nullzero"`
}

// Active reports whether the session can still authenticate at now.
func (s *Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}

// HasRoblox reports whether a Roblox account is linked.
func (u *User) HasRoblox() bool {
	return u.RobloxUsername != nil && *u.RobloxUsername != ""
}

// RobloxName returns the linked Roblox username or "".
func (u *User) RobloxName() string {
	if u.RobloxUsername == nil {
		return ""
	}
	return *u.RobloxUsername
}

// AvatarURL returns the Discord CDN URL for the user's avatar
func (u *User) AvatarURL(size int) string {
	if u.DiscordAvatar != nil && *u.DiscordAvatar != "" {
		ext := "png"
		// Animated avatars start with "a_"
		if len(*u.DiscordAvatar) > 2 && (*u.DiscordAvatar)[:2] == "a_" {
			ext = "gif"
		}
		return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.%s?size=%d",
			u.DiscordID, *u.DiscordAvatar, ext, size)
	}
	// Default avatar based on user ID
	id, _ := strconv.ParseUint(u.DiscordID, 10, 64)
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", (id>>22)%6)
}
