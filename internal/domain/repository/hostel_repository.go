package repository

import (
	"context"

	"pgbee/internal/domain/entity"

	"github.com/google/uuid"
)

// HostelRepository persists hostel listings.
type HostelRepository interface {
	Create(ctx context.Context, hostel *entity.Hostel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error)
	FindAll(ctx context.Context) ([]*entity.Hostel, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Hostel, error)

	// FindWithCoordinates returns listings that have both latitude and longitude.
	FindWithCoordinates(ctx context.Context) ([]*entity.Hostel, error)

	Update(ctx context.Context, hostel *entity.Hostel) error
	Delete(ctx context.Context, id uuid.UUID) error
}
