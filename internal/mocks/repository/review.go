package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pgbee/internal/domain/entity"
)

type MockReviewRepository struct {
	mock.Mock
}

func NewMockReviewRepository(t *testing.T) *MockReviewRepository {
	m := &MockReviewRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)

	return first[*entity.Review](args), args.Error(1)
}

func (m *MockReviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, userID)

	return first[[]*entity.Review](args), args.Error(1)
}

func (m *MockReviewRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, hostelID)

	return first[[]*entity.Review](args), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
