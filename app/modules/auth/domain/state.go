package authdomain

import "time"

// StatePurpose binds a signed OAuth state to one flow so a state minted for
// one callback cannot be replayed against another.
type StatePurpose string

const (
	PurposeDiscordLogin StatePurpose = "discord-login"
	PurposeRobloxLink   StatePurpose = "roblox-link"
	PurposeGitHubLink   StatePurpose = "github-link"
)

// OAuthState is the payload carried through a provider round trip.
type OAuthState struct {
	Purpose   StatePurpose
	Nonce     string
	Redirect  string
	UserID    string
	DiscordID string
	ExpiresAt time.Time
}
