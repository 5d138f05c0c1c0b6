package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/db/bundb"
)

func (s *service) ListWhitelist(ctx context.Context) ([]userdb.AdminWhitelistEntry, error) {
	return observability.Run(ctx, s.telemetry, "ListWhitelist", "", func(ctx context.Context) ([]userdb.AdminWhitelistEntry, error) {
		entries, err := s.repo.ListWhitelist(ctx, nil)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []userdb.AdminWhitelistEntry{}
		}
		return entries, nil
	})
}

// AddToWhitelist lists discordID and promotes an existing user right away.
func (s *service) AddToWhitelist(ctx context.Context, discordID, note string, addedBy *uuid.UUID) (*userdb.AdminWhitelistEntry, error) {
	discordID = strings.TrimSpace(discordID)
	return observability.Run(ctx, s.telemetry, "AddToWhitelist", discordID, func(ctx context.Context) (*userdb.AdminWhitelistEntry, error) {
		if err := s.validate.Struct(whitelistInput{DiscordID: discordID, Note: note}); err != nil {
			return nil, validationError(err)
		}

		return bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (*userdb.AdminWhitelistEntry, error) {
			entry := &userdb.AdminWhitelistEntry{DiscordID: discordID, Note: note, AddedBy: addedBy}
			if err := s.repo.AddWhitelistEntry(ctx, db, entry); err != nil {
				if errors.Is(err, userdb.ErrDuplicate) {
					return nil, ErrAlreadyWhitelisted.WithMessage(fmt.Sprintf("discord id %s is already whitelisted", discordID))
				}
				return nil, err
			}
			if err := s.syncAdminFlag(ctx, db, discordID, true); err != nil {
				return nil, err
			}
			return entry, nil
		})
	})
}

// RemoveFromWhitelist unlists discordID and demotes an existing user right away.
func (s *service) RemoveFromWhitelist(ctx context.Context, discordID string) error {
	discordID = strings.TrimSpace(discordID)
	_, err := observability.Run(ctx, s.telemetry, "RemoveFromWhitelist", discordID, func(ctx context.Context) (struct{}, error) {
		return bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			if err := s.repo.RemoveWhitelistEntry(ctx, db, discordID); err != nil {
				if errors.Is(err, userdb.ErrNoRowsAffected) {
					return struct{}{}, ErrNotWhitelisted
				}
				return struct{}{}, err
			}
			return struct{}{}, s.syncAdminFlag(ctx, db, discordID, false)
		})
	})
	return err
}

func (s *service) SeedBootstrapAdmins(ctx context.Context, discordIDs []string) error {
	for _, id := range discordIDs {
		_, err := s.AddToWhitelist(ctx, id, "bootstrap admin", nil)
		switch {
		case err == nil:
			s.logger.InfoContext(ctx, "Seeded bootstrap admin", slog.String("discord_id", id))
		case errors.Is(err, ErrAlreadyWhitelisted):
		default:
			return fmt.Errorf("failed to seed bootstrap admin %s: %w", id, err)
		}
	}
	return nil
}

// syncAdminFlag updates is_admin for a user that has already logged in.
// A Discord id without a user row is fine: the flag is set at first login.
func (s *service) syncAdminFlag(ctx context.Context, db bun.IDB, discordID string, isAdmin bool) error {
	err := s.repo.SetAdminByDiscordID(ctx, db, discordID, isAdmin)
	if err != nil && !errors.Is(err, userdb.ErrNoRowsAffected) {
		return err
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Note" {
		return ErrNoteTooLong
	}
	return ErrInvalidDiscordID
}
