package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pgbee/internal/domain/entity"
)

type MockHostelRepository struct {
	mock.Mock
}

func NewMockHostelRepository(t *testing.T) *MockHostelRepository {
	m := &MockHostelRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockHostelRepository) Create(ctx context.Context, hostel *entity.Hostel) error {
	return m.Called(ctx, hostel).Error(0)
}

func (m *MockHostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	args := m.Called(ctx, id)

	return first[*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelRepository) FindAll(ctx context.Context) ([]*entity.Hostel, error) {
	args := m.Called(ctx)

	return first[[]*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Hostel, error) {
	args := m.Called(ctx, userID)

	return first[[]*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelRepository) FindWithCoordinates(ctx context.Context) ([]*entity.Hostel, error) {
	args := m.Called(ctx)

	return first[[]*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelRepository) Update(ctx context.Context, hostel *entity.Hostel) error {
	return m.Called(ctx, hostel).Error(0)
}

func (m *MockHostelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
