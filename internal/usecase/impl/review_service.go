package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	hostelRepo repository.HostelRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	hostelRepo repository.HostelRepository,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo: reviewRepo,
		hostelRepo: hostelRepo,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, input *usecase.ReviewInput) (*entity.Review, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	if _, err := s.hostelRepo.FindByID(ctx, input.HostelID); err != nil {
		return nil, errors.Wrap(err, "failed to find reviewed hostel")
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	review := &entity.Review{
		UserID:   userID,
		HostelID: input.HostelID,
		Rating:   input.Rating,
		Text:     input.Text,
		Image:    input.Image,
		Date:     date,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Review created",
		slog.Any("reviewID", review.ID), slog.Any("hostelID", review.HostelID))

	return review, nil
}

func (s *reviewService) Get(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := s.reviewRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user reviews")
	}

	return reviews, nil
}

func (s *reviewService) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := s.reviewRepo.FindByHostelID(ctx, hostelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list hostel reviews")
	}

	return reviews, nil
}

func (s *reviewService) Update(ctx context.Context, userID, id uuid.UUID, patch *usecase.ReviewPatch) (*entity.Review, error) {
	review, err := s.authoredReview(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
		review.Rating = *patch.Rating
	}
	setIf(&review.Text, patch.Text)
	setIf(&review.Image, patch.Image)

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.authoredReview(ctx, userID, id); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

func (s *reviewService) authoredReview(ctx context.Context, userID, id uuid.UUID) (*entity.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find review")
	}
	if review.UserID != userID {
		return nil, domainerrors.ErrReviewForbidden
	}

	return review, nil
}

func validateRating(rating int) error {
	if rating < entity.MinRating || rating > entity.MaxRating {
		return domainerrors.NewValidationError(
			fmt.Sprintf("rating must be between %d and %d", entity.MinRating, entity.MaxRating))
	}

	return nil
}
