package repository

import (
	"context"

	"pgbee/internal/domain/entity"
	"pgbee/internal/errors"
)

// ErrRoleNotFound is recovered locally by creating the role.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository persists roles.
type RoleRepository interface {
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
	// Create is idempotent on name: a lost race adopts the existing role ID.
	Create(ctx context.Context, role *entity.Role) error
}
