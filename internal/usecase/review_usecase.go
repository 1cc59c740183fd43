package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
)

// ReviewInput is a new review. A zero Date means now.
type ReviewInput struct {
	HostelID uuid.UUID
	Rating   int
	Text     string
	Image    string
	Date     time.Time
}

// ReviewPatch carries a partial update; nil fields are left untouched.
type ReviewPatch struct {
	Rating *int
	Text   *string
	Image  *string
}

// ReviewUsecase manages hostel reviews. Only the author may change a review.
type ReviewUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input *ReviewInput) (*entity.Review, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]*entity.Review, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch *ReviewPatch) (*entity.Review, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
