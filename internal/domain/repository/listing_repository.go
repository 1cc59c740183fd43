package repository

import (
	"context"

	"pgbee/internal/domain/entity"

	"github.com/google/uuid"
)

// AmenityRepository persists the per-hostel amenities row.
type AmenityRepository interface {
	Create(ctx context.Context, amenities *entity.Amenities) error
	FindByHostelID(ctx context.Context, hostelID uuid.UUID) (*entity.Amenities, error)
	Update(ctx context.Context, amenities *entity.Amenities) error
	DeleteByHostelID(ctx context.Context, hostelID uuid.UUID) error
}

// RentRepository persists rent tiers, unique per (hostel, sharing type).
type RentRepository interface {
	Create(ctx context.Context, rent *entity.Rent) error
	FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Rent, error)
	FindByHostelAndSharingType(ctx context.Context, hostelID uuid.UUID, sharingType string) (*entity.Rent, error)
	Update(ctx context.Context, rent *entity.Rent) error

	// DeleteByHostelID removes the tiers of a hostel, all of them when sharingType is empty.
	DeleteByHostelID(ctx context.Context, hostelID uuid.UUID, sharingType string) (int64, error)
}
