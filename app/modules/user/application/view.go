package userservice

import (
	"time"

	"github.com/google/uuid"

	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

// UserView is the API representation of a user.
type UserView struct {
	ID             uuid.UUID `json:"id"`
	DiscordID      string    `json:"discord_id"`
	Username       string    `json:"username"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	IsAdmin        bool      `json:"is_admin"`
	RobloxID       string    `json:"roblox_id,omitempty"`
	RobloxUsername string    `json:"roblox_username,omitempty"`
	GitHubUsername string    `json:"github_username,omitempty"`
	HasRoblox      bool      `json:"has_roblox"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUserView projects u for API responses.
func NewUserView(u *userdb.User) *UserView {
	if u == nil {
		return nil
	}
	v := &UserView{
		ID:             u.ID,
		DiscordID:      u.DiscordID,
		Username:       u.DiscordUsername,
		AvatarURL:      u.AvatarURL(128),
		IsAdmin:        u.IsAdmin,
		RobloxUsername: u.RobloxName(),
		HasRoblox:      u.HasRoblox(),
		CreatedAt:      u.CreatedAt,
	}
	if u.RobloxID != nil {
		v.RobloxID = *u.RobloxID
	}
	if u.GitHubUsername != nil {
		v.GitHubUsername = *u.GitHubUsername
	}
	return v
}
