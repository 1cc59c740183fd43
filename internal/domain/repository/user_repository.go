// Package repository declares one persistence interface per entity. The gorm
// implementations live in infra/persistence/postgres, in-memory ones in mocks/memory.
package repository

import (
	"context"

	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = domainerrors.ErrUserNotFound

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user, with its role, by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user, with its role, by email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. A taken email yields a duplicate error.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
