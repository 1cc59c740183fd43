package usecase

import (
	"context"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
)

// AmenitiesInput lists the facilities of one hostel.
type AmenitiesInput struct {
	Wifi          bool
	AC            bool
	Kitchen       bool
	Parking       bool
	Laundry       bool
	TV            bool
	FirstAid      bool
	Workspace     bool
	Security      bool
	CurrentBill   bool
	WaterBill     bool
	Food          bool
	Furniture     bool
	Bed           bool
	Water         bool
	StudentsCount int
}

// RentInput prices one sharing type of a hostel.
type RentInput struct {
	SharingType string
	Rent        int
}

// AmenityUsecase manages the single amenities row of a hostel.
type AmenityUsecase interface {
	Create(ctx context.Context, hostelID uuid.UUID, input *AmenitiesInput) (*entity.Amenities, error)
	Get(ctx context.Context, hostelID uuid.UUID) (*entity.Amenities, error)
	Update(ctx context.Context, hostelID uuid.UUID, input *AmenitiesInput) (*entity.Amenities, error)
	Delete(ctx context.Context, hostelID uuid.UUID) error
}

// RentUsecase manages the rent tiers of a hostel.
type RentUsecase interface {
	Create(ctx context.Context, hostelID uuid.UUID, input *RentInput) (*entity.Rent, error)
	List(ctx context.Context, hostelID uuid.UUID) ([]*entity.Rent, error)
	Update(ctx context.Context, hostelID uuid.UUID, input *RentInput) (*entity.Rent, error)

	// Delete removes one tier, or every tier of the hostel when sharingType is empty.
	Delete(ctx context.Context, hostelID uuid.UUID, sharingType string) error
}
