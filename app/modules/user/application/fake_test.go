package userservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string

	GetUserByIDFunc           func(ctx context.Context, db bun.IDB, id uuid.UUID) (*userdb.User, error)
	GetUserByDiscordIDFunc    func(ctx context.Context, db bun.IDB, discordID string) (*userdb.User, error)
	CreateUserFunc            func(ctx context.Context, db bun.IDB, user *userdb.User) error
	UpdateDiscordProfileFunc  func(ctx context.Context, db bun.IDB, user *userdb.User) error
	SetAdminByDiscordIDFunc   func(ctx context.Context, db bun.IDB, discordID string, isAdmin bool) error
	LinkRobloxFunc            func(ctx context.Context, db bun.IDB, userID uuid.UUID, robloxID, robloxUsername string) error
	LinkGitHubFunc            func(ctx context.Context, db bun.IDB, userID uuid.UUID, githubID, githubUsername string) error
	ListWhitelistFunc         func(ctx context.Context, db bun.IDB) ([]userdb.AdminWhitelistEntry, error)
	IsWhitelistedFunc         func(ctx context.Context, db bun.IDB, discordID string) (bool, error)
	AddWhitelistEntryFunc     func(ctx context.Context, db bun.IDB, entry *userdb.AdminWhitelistEntry) error
	RemoveWhitelistEntryFunc  func(ctx context.Context, db bun.IDB, discordID string) error
	SaveSessionFunc           func(ctx context.Context, db bun.IDB, session *userdb.Session) error
	GetSessionFunc            func(ctx context.Context, db bun.IDB, hash string) (*userdb.Session, error)
	TouchSessionFunc          func(ctx context.Context, db bun.IDB, hash string, at time.Time) error
	RevokeSessionFunc         func(ctx context.Context, db bun.IDB, hash string, at time.Time) error
	DeleteExpiredSessionsFunc func(ctx context.Context, db bun.IDB, before time.Time) (int64, error)
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{trace: []string{}}
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserRepo) GetUserByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*userdb.User, error) {
	f.record("GetUserByID")
	if f.GetUserByIDFunc != nil {
		return f.GetUserByIDFunc(ctx, db, id)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) GetUserByDiscordID(ctx context.Context, db bun.IDB, discordID string) (*userdb.User, error) {
	f.record("GetUserByDiscordID")
	if f.GetUserByDiscordIDFunc != nil {
		return f.GetUserByDiscordIDFunc(ctx, db, discordID)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) CreateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, db, user)
	}
	user.ID = uuid.New()
	return nil
}

func (f *FakeUserRepo) UpdateDiscordProfile(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("UpdateDiscordProfile")
	if f.UpdateDiscordProfileFunc != nil {
		return f.UpdateDiscordProfileFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepo) SetAdminByDiscordID(ctx context.Context, db bun.IDB, discordID string, isAdmin bool) error {
	f.record("SetAdminByDiscordID")
	if f.SetAdminByDiscordIDFunc != nil {
		return f.SetAdminByDiscordIDFunc(ctx, db, discordID, isAdmin)
	}
	return userdb.ErrNoRowsAffected
}

func (f *FakeUserRepo) LinkRoblox(ctx context.Context, db bun.IDB, userID uuid.UUID, robloxID, robloxUsername string) error {
	f.record("LinkRoblox")
	if f.LinkRobloxFunc != nil {
		return f.LinkRobloxFunc(ctx, db, userID, robloxID, robloxUsername)
	}
	return nil
}

func (f *FakeUserRepo) LinkGitHub(ctx context.Context, db bun.IDB, userID uuid.UUID, githubID, githubUsername string) error {
	f.record("LinkGitHub")
	if f.LinkGitHubFunc != nil {
		return f.LinkGitHubFunc(ctx, db, userID, githubID, githubUsername)
	}
	return nil
}

func (f *FakeUserRepo) ListWhitelist(ctx context.Context, db bun.IDB) ([]userdb.AdminWhitelistEntry, error) {
	f.record("ListWhitelist")
	if f.ListWhitelistFunc != nil {
		return f.ListWhitelistFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeUserRepo) IsWhitelisted(ctx context.Context, db bun.IDB, discordID string) (bool, error) {
	f.record("IsWhitelisted")
	if f.IsWhitelistedFunc != nil {
		return f.IsWhitelistedFunc(ctx, db, discordID)
	}
	return false, nil
}

func (f *FakeUserRepo) AddWhitelistEntry(ctx context.Context, db bun.IDB, entry *userdb.AdminWhitelistEntry) error {
	f.record("AddWhitelistEntry")
	if f.AddWhitelistEntryFunc != nil {
		return f.AddWhitelistEntryFunc(ctx, db, entry)
	}
	return nil
}

func (f *FakeUserRepo) RemoveWhitelistEntry(ctx context.Context, db bun.IDB, discordID string) error {
	f.record("RemoveWhitelistEntry")
	if f.RemoveWhitelistEntryFunc != nil {
		return f.RemoveWhitelistEntryFunc(ctx, db, discordID)
	}
	return nil
}

func (f *FakeUserRepo) SaveSession(ctx context.Context, db bun.IDB, session *userdb.Session) error {
	f.record("SaveSession")
	if f.SaveSessionFunc != nil {
		return f.SaveSessionFunc(ctx, db, session)
	}
	return nil
}

func (f *FakeUserRepo) GetSession(ctx context.Context, db bun.IDB, hash string) (*userdb.Session, error) {
	f.record("GetSession")
	if f.GetSessionFunc != nil {
		return f.GetSessionFunc(ctx, db, hash)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) TouchSession(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	f.record("TouchSession")
	if f.TouchSessionFunc != nil {
		return f.TouchSessionFunc(ctx, db, hash, at)
	}
	return nil
}

func (f *FakeUserRepo) RevokeSession(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	f.record("RevokeSession")
	if f.RevokeSessionFunc != nil {
		return f.RevokeSessionFunc(ctx, db, hash, at)
	}
	return nil
}

func (f *FakeUserRepo) DeleteExpiredSessions(ctx context.Context, db bun.IDB, before time.Time) (int64, error) {
	f.record("DeleteExpiredSessions")
	if f.DeleteExpiredSessionsFunc != nil {
		return f.DeleteExpiredSessionsFunc(ctx, db, before)
	}
	return 0, nil
}

// Ensure the fake actually satisfies the interface
var _ userdb.Repository = (*FakeUserRepo)(nil)
