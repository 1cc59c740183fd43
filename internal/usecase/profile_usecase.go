package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
)

// OwnerInput describes a landlord profile.
type OwnerInput struct {
	Name        string
	HostelName  string
	Phone       string
	Address     string
	Curfew      bool
	Description string
	Distance    float64
	Location    string
	Rent        float64
	Files       string
	Bedrooms    int
	Bathrooms   int
}

// OwnerPatch carries a partial update; nil fields are left untouched.
type OwnerPatch struct {
	Name        *string
	HostelName  *string
	Phone       *string
	Address     *string
	Curfew      *bool
	Description *string
	Distance    *float64
	Location    *string
	Rent        *float64
	Files       *string
	Bedrooms    *int
	Bathrooms   *int
}

// StudentInput describes a tenant profile.
type StudentInput struct {
	UserName         string
	DOB              time.Time
	Country          string
	PermanentAddress string
	PresentAddress   string
	City             string
	PostalCode       string
}

// StudentPatch carries a partial update; nil fields are left untouched.
type StudentPatch struct {
	UserName         *string
	DOB              *time.Time
	Country          *string
	PermanentAddress *string
	PresentAddress   *string
	City             *string
	PostalCode       *string
}

// OwnerUsecase manages owner profiles.
type OwnerUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input *OwnerInput) (*entity.Owner, error)
	List(ctx context.Context) ([]*entity.Owner, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Owner, error)
	Update(ctx context.Context, id uuid.UUID, patch *OwnerPatch) (*entity.Owner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentUsecase manages student profiles. A user has at most one.
type StudentUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input *StudentInput) (*entity.Student, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*entity.Student, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	Update(ctx context.Context, id uuid.UUID, patch *StudentPatch) (*entity.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
