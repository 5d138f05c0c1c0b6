package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/db/bundb"
)

// service implements the Service interface.
type service struct {
	repo      userdb.Repository
	db        *bun.DB
	validate  *validator.Validate
	logger    *slog.Logger
	telemetry observability.Telemetry
}

// NewService creates a new user service. db may be nil in tests, in which
// case operations run without a transaction.
func NewService(repo userdb.Repository, db *bun.DB, logger *slog.Logger, tel observability.Telemetry) Service {
	if logger == nil {
		logger = slog.Default()
	}
	tel.Service = "UserService"
	tel.Logger = logger
	return &service{
		repo:      repo,
		db:        db,
		validate:  validator.New(),
		logger:    logger,
		telemetry: tel,
	}
}

type whitelistInput struct {
	DiscordID string `validate:"required,number,min=17,max=20"`
	Note      string `validate:"max=200"`
}

func (s *service) UpsertDiscordUser(ctx context.Context, profile DiscordProfile) (*userdb.User, error) {
	return observability.Run(ctx, s.telemetry, "UpsertDiscordUser", profile.ID, func(ctx context.Context) (*userdb.User, error) {
		return bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (*userdb.User, error) {
			return s.upsertDiscordUserLogic(ctx, db, profile)
		})
	})
}

func (s *service) upsertDiscordUserLogic(ctx context.Context, db bun.IDB, profile DiscordProfile) (*userdb.User, error) {
	whitelisted, err := s.repo.IsWhitelisted(ctx, db, profile.ID)
	if err != nil {
		return nil, err
	}

	var avatar *string
	if profile.Avatar != "" {
		avatar = &profile.Avatar
	}

	user, err := s.repo.GetUserByDiscordID(ctx, db, profile.ID)
	switch {
	case errors.Is(err, userdb.ErrNotFound):
		user = &userdb.User{
			DiscordID:       profile.ID,
			DiscordUsername: profile.Username,
			DiscordAvatar:   avatar,
			IsAdmin:         whitelisted,
		}
		if err := s.repo.CreateUser(ctx, db, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.InfoContext(ctx, "Created user from Discord login",
			slog.String("user_id", user.ID.String()),
			slog.String("discord_id", user.DiscordID),
			slog.Bool("is_admin", user.IsAdmin),
		)
		return user, nil
	case err != nil:
		return nil, err
	}

	if user.IsAdmin != whitelisted {
		s.logger.InfoContext(ctx, "Reconciled admin flag with whitelist",
			slog.String("discord_id", user.DiscordID),
			slog.Bool("is_admin", whitelisted),
		)
	}
	user.DiscordUsername = profile.Username
	user.DiscordAvatar = avatar
	user.IsAdmin = whitelisted
	if err := s.repo.UpdateDiscordProfile(ctx, db, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*userdb.User, error) {
	return observability.Run(ctx, s.telemetry, "GetUser", id.String(), func(ctx context.Context) (*userdb.User, error) {
		user, err := s.repo.GetUserByID(ctx, nil, id)
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return user, err
	})
}

func (s *service) LinkRoblox(ctx context.Context, userID uuid.UUID, robloxID, robloxUsername string) (*userdb.User, error) {
	return observability.Run(ctx, s.telemetry, "LinkRoblox", userID.String(), func(ctx context.Context) (*userdb.User, error) {
		return bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (*userdb.User, error) {
			if err := s.repo.LinkRoblox(ctx, db, userID, robloxID, robloxUsername); err != nil {
				if errors.Is(err, userdb.ErrNoRowsAffected) {
					return nil, ErrUserNotFound
				}
				return nil, err
			}
			return s.repo.GetUserByID(ctx, db, userID)
		})
	})
}

func (s *service) LinkGitHub(ctx context.Context, userID uuid.UUID, githubID, githubUsername string) (*userdb.User, error) {
	return observability.Run(ctx, s.telemetry, "LinkGitHub", userID.String(), func(ctx context.Context) (*userdb.User, error) {
		return bundb.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (*userdb.User, error) {
			if err := s.repo.LinkGitHub(ctx, db, userID, githubID, githubUsername); err != nil {
				if errors.Is(err, userdb.ErrNoRowsAffected) {
					return nil, ErrUserNotFound
				}
				return nil, err
			}
			return s.repo.GetUserByID(ctx, db, userID)
		})
	})
}
