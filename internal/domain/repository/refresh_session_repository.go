package repository

import (
	"context"

	"pgbee/internal/domain/entity"
	"pgbee/internal/errors"

	"github.com/google/uuid"
)

// ErrRefreshSessionNotFound is returned when a refresh token hash has no live row.
var ErrRefreshSessionNotFound = errors.New("refresh session not found")

// RefreshSessionRepository stores the refresh-token allow-list.
type RefreshSessionRepository interface {
	Create(ctx context.Context, session *entity.RefreshSession) error

	// FindByHash returns the session for tokenHash, expired or not.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error)

	DeleteByHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired purges sessions that expired before now and reports how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
