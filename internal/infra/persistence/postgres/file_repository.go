package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/infra/persistence/model"
)

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) repository.FileRepository {
	return &fileRepository{db: db}
}

func (repo *fileRepository) Create(ctx context.Context, file *entity.File) error {
	fileM := &model.FileModel{
		UserID:      file.UserID,
		HostelID:    file.HostelID,
		Key:         file.Key,
		Location:    file.Location,
		ETag:        file.ETag,
		ContentType: file.ContentType,
		Size:        file.Size,
	}
	if err := repo.db.WithContext(ctx).Create(fileM).Error; err != nil {
		return translateError(err, nil, "failed to record file")
	}

	file.ID = fileM.ID
	file.CreatedAt = fileM.CreatedAt

	return nil
}

func (repo *fileRepository) FindByKey(ctx context.Context, key string) (*entity.File, error) {
	var fileM model.FileModel
	if err := repo.db.WithContext(ctx).Where("key = ?", key).First(&fileM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrFileNotFound, "failed to find file")
	}

	return toFileDomain(&fileM), nil
}

func (repo *fileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.File, error) {
	var rows []model.FileModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, nil, "failed to list files")
	}

	files := make([]*entity.File, 0, len(rows))
	for i := range rows {
		files = append(files, toFileDomain(&rows[i]))
	}

	return files, nil
}

func toFileDomain(data *model.FileModel) *entity.File {
	return &entity.File{
		ID:          data.ID,
		UserID:      data.UserID,
		HostelID:    data.HostelID,
		Key:         data.Key,
		Location:    data.Location,
		ETag:        data.ETag,
		ContentType: data.ContentType,
		Size:        data.Size,
		CreatedAt:   data.CreatedAt,
	}
}
