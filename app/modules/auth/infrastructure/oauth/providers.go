package authoauth

import (
	"strconv"

	"golang.org/x/oauth2"

	"github.com/skyrden-airlines/portal/config"
)

var (
	discordEndpoint = oauth2.Endpoint{
		AuthURL:  "https://discord.com/oauth2/authorize",
		TokenURL: "https://discord.com/api/oauth2/token",
	}
	robloxEndpoint = oauth2.Endpoint{
		AuthURL:  "https://apis.roblox.com/oauth/v1/authorize",
		TokenURL: "https://apis.roblox.com/oauth/v1/token",
	}
	githubEndpoint = oauth2.Endpoint{
		AuthURL:  "https://github.com/login/oauth/authorize",
		TokenURL: "https://github.com/login/oauth/access_token",
	}
)

const (
	discordUserInfoURL = "https://discord.com/api/users/@me"
	robloxUserInfoURL  = "https://apis.roblox.com/oauth/v1/userinfo"
	githubUserInfoURL  = "https://api.github.com/user"
)

// NewDiscord returns the Discord login provider (scope identify).
func NewDiscord(client config.OAuthClientConfig, opts ...Option) Provider {
	return newProvider("discord", client, []string{"identify"}, discordEndpoint, discordUserInfoURL, decodeDiscord, opts...)
}

// NewRoblox returns the Roblox account-linking provider.
func NewRoblox(client config.OAuthClientConfig, opts ...Option) Provider {
	return newProvider("roblox", client, []string{"openid", "profile"}, robloxEndpoint, robloxUserInfoURL, decodeRoblox, opts...)
}

// NewGitHub returns the legacy GitHub account-linking provider.
func NewGitHub(client config.OAuthClientConfig, opts ...Option) Provider {
	return newProvider("github", client, []string{"read:user"}, githubEndpoint, githubUserInfoURL, decodeGitHub, opts...)
}

func decodeDiscord(body []byte) (*Profile, error) {
	var u struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Avatar     string `json:"avatar"`
	}
	if err := decodeJSON(body, &u); err != nil {
		return nil, err
	}
	return &Profile{ID: u.ID, Username: u.Username, Avatar: u.Avatar}, nil
}

func decodeRoblox(body []byte) (*Profile, error) {
	var u struct {
		Sub               string `json:"sub"`
		Name              string `json:"name"`
		Nickname          string `json:"nickname"`
		PreferredUsername string `json:"preferred_username"`
		Picture           string `json:"picture"`
	}
	if err := decodeJSON(body, &u); err != nil {
		return nil, err
	}
	username := u.PreferredUsername
	if username == "" {
		username = u.Name
	}
	return &Profile{ID: u.Sub, Username: username, Avatar: u.Picture}, nil
}

func decodeGitHub(body []byte) (*Profile, error) {
	var u struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := decodeJSON(body, &u); err != nil {
		return nil, err
	}
	id := ""
	if u.ID != 0 {
		id = strconv.FormatInt(u.ID, 10)
	}
	return &Profile{ID: id, Username: u.Login, Avatar: u.AvatarURL}, nil
}
