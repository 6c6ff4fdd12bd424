package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger removes expired refresh and reset tokens, returning how many were dropped.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

// StartTokenJanitor purges expired tokens every interval until ctx is done.
// The returned channel is closed once the loop exits.
func StartTokenJanitor(ctx context.Context, purger Purger, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if purger == nil || interval <= 0 {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed, err := purger.PurgeExpired(ctx, now)
				if err != nil {
					logger.Warn("token purge failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					logger.Debug("expired tokens purged", zap.Int("removed", removed))
				}
			}
		}
	}()
	return done
}
