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

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)
	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		return translateError(err, nil, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&reviewM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrReviewNotFound, "failed to find review")
	}

	return toReviewDomain(&reviewM), nil
}

func (repo *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return repo.list(repo.db.WithContext(ctx).Where("user_id = ?", userID), "failed to list user reviews")
}

func (repo *reviewRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Review, error) {
	return repo.list(repo.db.WithContext(ctx).Where("hostel_id = ?", hostelID), "failed to list hostel reviews")
}

func (repo *reviewRepository) list(tx *gorm.DB, op string) ([]*entity.Review, error) {
	var rows []model.ReviewModel
	if err := tx.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err, nil, op)
	}

	reviews := make([]*entity.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, toReviewDomain(&rows[i]))
	}

	return reviews, nil
}

// Update rewrites the mutable columns; author and hostel stay fixed.
func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	result := repo.db.WithContext(ctx).Model(reviewM).
		Select("Rating", "Text", "Image", "Date", "UpdatedAt").
		Updates(reviewM)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReviewNotFound
	}

	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReviewNotFound
	}

	return nil
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:        data.ID,
		UserID:    data.UserID,
		HostelID:  data.HostelID,
		Rating:    data.Rating,
		Text:      data.Text,
		Image:     data.Image,
		Date:      data.Date,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:        data.ID,
		UserID:    data.UserID,
		HostelID:  data.HostelID,
		Rating:    data.Rating,
		Text:      data.Text,
		Image:     data.Image,
		Date:      data.Date,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
