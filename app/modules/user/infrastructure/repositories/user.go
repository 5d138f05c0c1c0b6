package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/skyrden-airlines/portal/db/bundb"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// --- Users ---

func (r *Impl) GetUserByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (r *Impl) GetUserByDiscordID(ctx context.Context, db bun.IDB, discordID string) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().Model(user).Where("u.discord_id = ?", discordID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by discord id: %w", err)
	}
	return user, nil
}

func (r *Impl) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := db.NewInsert().Model(user).Exec(ctx); err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateDiscordProfile refreshes the Discord-sourced columns and is_admin.
func (r *Impl) UpdateDiscordProfile(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	user.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(user).
		Column("discord_username", "discord_avatar", "is_admin", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update discord profile: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) SetAdminByDiscordID(ctx context.Context, db bun.IDB, discordID string, isAdmin bool) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("is_admin = ?", isAdmin).
		Set("updated_at = ?", time.Now().UTC()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) LinkRoblox(ctx context.Context, db bun.IDB, userID uuid.UUID, robloxID, robloxUsername string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("roblox_id = ?", robloxID).
		Set("roblox_username = ?", robloxUsername).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to link roblox account: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) LinkGitHub(ctx context.Context, db bun.IDB, userID uuid.UUID, githubID, githubUsername string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("github_id = ?", githubID).
		Set("github_username = ?", githubUsername).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to link github account: %w", err)
	}
	return checkAffected(res)
}

// --- Admin whitelist ---

func (r *Impl) ListWhitelist(ctx context.Context, db bun.IDB) ([]AdminWhitelistEntry, error) {
	db = r.resolveDB(db)
	var entries []AdminWhitelistEntry
	if err := db.NewSelect().Model(&entries).Order("aw.added_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list whitelist: %w", err)
	}
	return entries, nil
}

func (r *Impl) IsWhitelisted(ctx context.Context, db bun.IDB, discordID string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*AdminWhitelistEntry)(nil)).
		Where("aw.discord_id = ?", discordID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check whitelist: %w", err)
	}
	return exists, nil
}

func (r *Impl) AddWhitelistEntry(ctx context.Context, db bun.IDB, entry *AdminWhitelistEntry) error {
	db = r.resolveDB(db)
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(entry).Exec(ctx); err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add whitelist entry: %w", err)
	}
	return nil
}

func (r *Impl) RemoveWhitelistEntry(ctx context.Context, db bun.IDB, discordID string) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*AdminWhitelistEntry)(nil)).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove whitelist entry: %w", err)
	}
	return checkAffected(res)
}

// --- Sessions ---

func (r *Impl) SaveSession(ctx context.Context, db bun.IDB, session *Session) error {
	db = r.resolveDB(db)
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(session).Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *Impl) GetSession(ctx context.Context, db bun.IDB, hash string) (*Session, error) {
	db = r.resolveDB(db)
	session := new(Session)
	err := db.NewSelect().Model(session).Where("s.hash = ?", hash).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (r *Impl) TouchSession(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	db = r.resolveDB(db)
	_, err := db.NewUpdate().
		Model((*Session)(nil)).
		Set("last_seen_at = ?", at).
		Where("hash = ?", hash).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (r *Impl) RevokeSession(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Session)(nil)).
		Set("revoked = ?", true).
		Set("revoked_at = ?", at).
		Where("hash = ?", hash).
		Where("revoked = ?", false).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) DeleteExpiredSessions(ctx context.Context, db bun.IDB, before time.Time) (int64, error) {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Session)(nil)).
		Where("expires_at < ?", before).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
