package authservice

import (
	"context"

	authoauth "github.com/skyrden-airlines/portal/app/modules/auth/infrastructure/oauth"
)

// ------------------------
// Fake OAuth Provider
// ------------------------

type FakeProvider struct {
	NameValue        string
	AuthCodeURLFunc  func(state string) string
	AuthenticateFunc func(ctx context.Context, code string) (*authoauth.Profile, error)

	LastState string
}

func (f *FakeProvider) Name() string {
	if f.NameValue == "" {
		return "fake"
	}
	return f.NameValue
}

func (f *FakeProvider) AuthCodeURL(state string) string {
	f.LastState = state
	if f.AuthCodeURLFunc != nil {
		return f.AuthCodeURLFunc(state)
	}
	return "https://provider.test/authorize?state=" + state
}

func (f *FakeProvider) Authenticate(ctx context.Context, code string) (*authoauth.Profile, error) {
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, code)
	}
	return nil, authoauth.ErrExchangeFailed
}

var _ authoauth.Provider = (*FakeProvider)(nil)
