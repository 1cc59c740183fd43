package usecase

import (
	"context"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
)

// HostelInput is the full set of listing attributes supplied on creation.
type HostelInput struct {
	HostelName  string
	Phone       string
	Address     string
	Curfew      bool
	Description string
	Distance    float64
	Location    string
	Rent        float64
	Gender      string
	Files       string
	Bedrooms    int
	Bathrooms   int
	Latitude    *float64
	Longitude   *float64
}

// HostelPatch carries a partial update; nil fields are left untouched.
type HostelPatch struct {
	HostelName  *string
	Phone       *string
	Address     *string
	Curfew      *bool
	Description *string
	Distance    *float64
	Location    *string
	Rent        *float64
	Gender      *string
	Files       *string
	Bedrooms    *int
	Bathrooms   *int
	Latitude    *float64
	Longitude   *float64
}

// NearbyQuery selects hostels within RadiusKm of a point.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// HostelUsecase manages hostel listings. Mutations are limited to the owning user.
type HostelUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input *HostelInput) (*entity.Hostel, error)
	List(ctx context.Context) ([]*entity.Hostel, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Hostel, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Hostel, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch *HostelPatch) (*entity.Hostel, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Nearby(ctx context.Context, query *NearbyQuery) ([]*entity.NearbyHostel, error)
	QRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}
