package repository

import (
	"context"

	"pgbee/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewRepository persists hostel reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
