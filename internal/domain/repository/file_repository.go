package repository

import (
	"context"

	"pgbee/internal/domain/entity"

	"github.com/google/uuid"
)

// FileRepository persists upload metadata; the bytes live in blob storage.
type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	FindByKey(ctx context.Context, key string) (*entity.File, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.File, error)
}
