package authservice

import (
	"context"
	"errors"
	"log/slog"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

// ResolveIdentity tries, in order, the session cookie, the token cookie and
// the bearer header. A valid token cookie without a live session gets a new
// session so later requests see current admin status.
func (s *service) ResolveIdentity(ctx context.Context, creds Credentials, meta SessionMeta) (*Resolution, error) {
	if creds.SessionToken != "" {
		id, err := s.identityFromSession(ctx, creds.SessionToken)
		if err != nil {
			return nil, err
		}
		if id != nil {
			return &Resolution{Identity: id}, nil
		}
	}

	if creds.CookieToken != "" {
		if claims, err := s.tokens.ValidateToken(creds.CookieToken); err == nil {
			res := &Resolution{Identity: identityFromClaims(claims, authdomain.SourceCookie)}
			session, err := s.openSession(ctx, claims.UserID, meta)
			if err != nil {
				s.logger.WarnContext(ctx, "Failed to re-hydrate session from token",
					slog.String("user_id", claims.UserID.String()),
					slog.String("error", err.Error()),
				)
			} else {
				res.NewSession = session
			}
			return res, nil
		}
	}

	if creds.BearerToken != "" {
		if claims, err := s.tokens.ValidateToken(creds.BearerToken); err == nil {
			return &Resolution{Identity: identityFromClaims(claims, authdomain.SourceBearer)}, nil
		}
	}

	return &Resolution{}, nil
}

func (s *service) identityFromSession(ctx context.Context, raw string) (*authdomain.Identity, error) {
	hash := hashToken(raw)
	session, err := s.repo.GetSession(ctx, nil, hash)
	if errors.Is(err, userdb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if !session.Active(now) {
		return nil, nil
	}

	user, err := s.repo.GetUserByID(ctx, nil, session.UserID)
	if errors.Is(err, userdb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchSession(ctx, nil, hash, now); err != nil {
		s.logger.DebugContext(ctx, "Failed to touch session", slog.String("error", err.Error()))
	}

	return &authdomain.Identity{
		UserID:         user.ID,
		DiscordID:      user.DiscordID,
		Username:       user.DiscordUsername,
		IsAdmin:        user.IsAdmin,
		RobloxUsername: user.RobloxName(),
		Source:         authdomain.SourceSession,
	}, nil
}

func identityFromClaims(c *authdomain.Claims, source authdomain.Source) *authdomain.Identity {
	return &authdomain.Identity{
		UserID:         c.UserID,
		DiscordID:      c.DiscordID,
		Username:       c.Username,
		IsAdmin:        c.IsAdmin,
		RobloxUsername: c.RobloxUsername,
		Source:         source,
	}
}
