package postgres

import (
	"context"

	"gorm.io/gorm"

	"pgbee/internal/domain/repository"
)

type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager runs account writes (user, role, refresh session)
// atomically on the primary.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute delegates to gorm's Transaction, which rolls back on a returned
// error or a panic. Errors from fn pass through untouched; only begin and
// commit failures are translated here.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	var fnErr error

	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txRepositories{tx: tx})

		return fnErr
	})
	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	default:
		return translateError(err, nil, "transaction failed")
	}
}

// txRepositories hands out repositories bound to one open transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (f txRepositories) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f txRepositories) NewRoleRepository() repository.RoleRepository {
	return NewRoleRepository(f.tx)
}

func (f txRepositories) NewRefreshSessionRepository() repository.RefreshSessionRepository {
	return NewRefreshSessionRepository(f.tx)
}
