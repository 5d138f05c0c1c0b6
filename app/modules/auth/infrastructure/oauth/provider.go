// Package authoauth talks to the Discord, Roblox and GitHub OAuth2 endpoints.
package authoauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/skyrden-airlines/portal/config"
)

var (
	// ErrExchangeFailed is returned when the authorization code is rejected.
	ErrExchangeFailed = errors.New("oauth code exchange failed")

	// ErrProfileFailed is returned when the profile endpoint fails or returns
	// an unusable body.
	ErrProfileFailed = errors.New("oauth profile fetch failed")
)

const maxProfileBytes = 1 << 20

// Profile is the provider identity of the authorizing account.
type Profile struct {
	ID       string
	Username string
	Avatar   string
}

// Provider runs one OAuth2 authorization-code flow.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	// Authenticate exchanges code and fetches the account profile.
	Authenticate(ctx context.Context, code string) (*Profile, error)
}

type profileDecoder func(body []byte) (*Profile, error)

type provider struct {
	name        string
	cfg         *oauth2.Config
	userInfoURL string
	decode      profileDecoder
	httpClient  *http.Client
}

// Option overrides provider defaults.
type Option func(*provider)

// WithEndpoints points the provider at different authorize, token and
// profile URLs.
func WithEndpoints(endpoint oauth2.Endpoint, userInfoURL string) Option {
	return func(p *provider) {
		p.cfg.Endpoint = endpoint
		p.userInfoURL = userInfoURL
	}
}

// WithHTTPClient sets the client used for token exchange and profile calls.
func WithHTTPClient(c *http.Client) Option {
	return func(p *provider) { p.httpClient = c }
}

func newProvider(name string, client config.OAuthClientConfig, scopes []string, endpoint oauth2.Endpoint, userInfoURL string, decode profileDecoder, opts ...Option) Provider {
	p := &provider{
		name: name,
		cfg: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			RedirectURL:  client.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		decode:      decode,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *provider) Name() string { return p.name }

func (p *provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

func (p *provider) Authenticate(ctx context.Context, code string) (*Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExchangeFailed, p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProfileFailed, p.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.cfg.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProfileFailed, p.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProfileFailed, p.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrProfileFailed, p.name, resp.StatusCode)
	}

	profile, err := p.decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProfileFailed, p.name, err)
	}
	if profile.ID == "" || profile.Username == "" {
		return nil, fmt.Errorf("%w: %s: profile is missing id or username", ErrProfileFailed, p.name)
	}
	return profile, nil
}

func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}
	return nil
}
