package userhandlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

type FakeService struct {
	ListWhitelistFunc       func(ctx context.Context) ([]userdb.AdminWhitelistEntry, error)
	AddToWhitelistFunc      func(ctx context.Context, discordID, note string, addedBy *uuid.UUID) (*userdb.AdminWhitelistEntry, error)
	RemoveFromWhitelistFunc func(ctx context.Context, discordID string) error
}

func (f *FakeService) UpsertDiscordUser(ctx context.Context, profile userservice.DiscordProfile) (*userdb.User, error) {
	return nil, nil
}

func (f *FakeService) GetUser(ctx context.Context, id uuid.UUID) (*userdb.User, error) {
	return nil, userservice.ErrUserNotFound
}

func (f *FakeService) LinkRoblox(ctx context.Context, userID uuid.UUID, robloxID, robloxUsername string) (*userdb.User, error) {
	return nil, nil
}

func (f *FakeService) LinkGitHub(ctx context.Context, userID uuid.UUID, githubID, githubUsername string) (*userdb.User, error) {
	return nil, nil
}

func (f *FakeService) ListWhitelist(ctx context.Context) ([]userdb.AdminWhitelistEntry, error) {
	if f.ListWhitelistFunc != nil {
		return f.ListWhitelistFunc(ctx)
	}
	return []userdb.AdminWhitelistEntry{}, nil
}

func (f *FakeService) AddToWhitelist(ctx context.Context, discordID, note string, addedBy *uuid.UUID) (*userdb.AdminWhitelistEntry, error) {
	if f.AddToWhitelistFunc != nil {
		return f.AddToWhitelistFunc(ctx, discordID, note, addedBy)
	}
	return &userdb.AdminWhitelistEntry{DiscordID: discordID, Note: note, AddedBy: addedBy}, nil
}

func (f *FakeService) RemoveFromWhitelist(ctx context.Context, discordID string) error {
	if f.RemoveFromWhitelistFunc != nil {
		return f.RemoveFromWhitelistFunc(ctx, discordID)
	}
	return nil
}

func (f *FakeService) SeedBootstrapAdmins(ctx context.Context, discordIDs []string) error {
	return nil
}

func (f *FakeService) PurgeExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

var _ userservice.Service = (*FakeService)(nil)
