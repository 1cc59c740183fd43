package impl

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"pgbee/config"
	"pgbee/internal/domain/repository"
	"pgbee/internal/errors"
)

// SessionPurger deletes expired refresh sessions on a fixed interval for as
// long as the application runs.
type SessionPurger struct {
	sessions repository.RefreshSessionRepository
	interval time.Duration
	logger   *slog.Logger
}

type SessionPurgerParams struct {
	fx.In
	fx.Lifecycle

	Config      *config.Config
	SessionRepo repository.RefreshSessionRepository
	Logger      *slog.Logger
}

func NewSessionPurger(params SessionPurgerParams) *SessionPurger {
	purger := &SessionPurger{
		sessions: params.SessionRepo,
		interval: params.Config.Auth.SessionPurgeInterval,
		logger:   params.Logger,
	}

	runCtx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				purger.run(runCtx)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			stop()

			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "wait for session purger")
			}
		},
	})

	return purger
}

func (p *SessionPurger) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = p.Purge(ctx)
		}
	}
}

// Purge removes every expired session once and reports how many went.
func (p *SessionPurger) Purge(ctx context.Context) (int64, error) {
	n, err := p.sessions.DeleteExpired(ctx)
	if err != nil {
		p.logger.Error("Failed to purge expired refresh sessions", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to purge expired refresh sessions")
	}

	if n > 0 {
		p.logger.Info("Purged expired refresh sessions", slog.Int64("count", n))
	}

	return n, nil
}
