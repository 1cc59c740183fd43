package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
)

// UploadInput is one multipart file. Size is the size the client declared.
type UploadInput struct {
	UserID      uuid.UUID
	HostelID    *uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileUsecase stores uploads in blob storage and records their metadata.
type FileUsecase interface {
	Upload(ctx context.Context, input *UploadInput) (*entity.File, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.File, error)
	GetByKey(ctx context.Context, key string) (*entity.File, error)
}
