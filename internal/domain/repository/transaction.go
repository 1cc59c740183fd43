package repository

import "context"

// TransactionManager lets usecases group account writes without seeing the
// database driver.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	Execute(ctx context.Context, fn func(RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewRoleRepository() RoleRepository
	NewRefreshSessionRepository() RefreshSessionRepository
}
