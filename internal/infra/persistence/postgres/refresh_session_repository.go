package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"pgbee/internal/domain/entity"
	"pgbee/internal/domain/repository"
	"pgbee/internal/infra/persistence/model"
)

type refreshSessionRepository struct {
	db *gorm.DB
}

// NewRefreshSessionRepository is the constructor for the refresh-token allow-list.
func NewRefreshSessionRepository(db *gorm.DB) repository.RefreshSessionRepository {
	return &refreshSessionRepository{db: db}
}

func (repo *refreshSessionRepository) Create(ctx context.Context, session *entity.RefreshSession) error {
	sessionM := &model.RefreshSessionModel{
		ID:        session.ID,
		UserID:    session.UserID,
		TokenHash: session.TokenHash,
		ExpiresAt: session.ExpiresAt,
	}
	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return translateError(err, nil, "failed to create refresh session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByHash always reads from the primary: a session rotated a moment ago
// may not have reached the replicas yet.
func (repo *refreshSessionRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error) {
	var sessionM model.RefreshSessionModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("token_hash = ?", tokenHash).
		First(&sessionM).Error
	if err != nil {
		return nil, translateError(err, repository.ErrRefreshSessionNotFound, "failed to find refresh session")
	}

	return &entity.RefreshSession{
		ID:        sessionM.ID,
		UserID:    sessionM.UserID,
		TokenHash: sessionM.TokenHash,
		ExpiresAt: sessionM.ExpiresAt,
		CreatedAt: sessionM.CreatedAt,
	}, nil
}

func (repo *refreshSessionRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&model.RefreshSessionModel{})
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete refresh session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshSessionNotFound
	}

	return nil
}

func (repo *refreshSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshSessionModel{}).Error

	return translateError(err, nil, "failed to delete user refresh sessions")
}

func (repo *refreshSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&model.RefreshSessionModel{})
	if result.Error != nil {
		return 0, translateError(result.Error, nil, "failed to purge refresh sessions")
	}

	return result.RowsAffected, nil
}
