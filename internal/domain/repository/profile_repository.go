package repository

import (
	"context"

	"pgbee/internal/domain/entity"

	"github.com/google/uuid"
)

// OwnerRepository persists owner profiles.
type OwnerRepository interface {
	Create(ctx context.Context, owner *entity.Owner) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error)
	FindAll(ctx context.Context) ([]*entity.Owner, error)
	Update(ctx context.Context, owner *entity.Owner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentRepository persists student profiles. A user has at most one.
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Student, error)
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}
