package userservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/skyrden-airlines/portal/app/shared/observability"
)

func (s *service) PurgeExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	return observability.Run(ctx, s.telemetry, "PurgeExpiredSessions", "", func(ctx context.Context) (int64, error) {
		n, err := s.repo.DeleteExpiredSessions(ctx, nil, before.UTC())
		if err != nil {
			return 0, err
		}
		if n > 0 {
			s.logger.InfoContext(ctx, "Purged expired sessions", slog.Int64("count", n))
		}
		return n, nil
	})
}
