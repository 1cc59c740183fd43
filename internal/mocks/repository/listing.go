package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pgbee/internal/domain/entity"
)

type MockAmenityRepository struct {
	mock.Mock
}

func NewMockAmenityRepository(t *testing.T) *MockAmenityRepository {
	m := &MockAmenityRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockAmenityRepository) Create(ctx context.Context, amenities *entity.Amenities) error {
	return m.Called(ctx, amenities).Error(0)
}

func (m *MockAmenityRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) (*entity.Amenities, error) {
	args := m.Called(ctx, hostelID)

	return first[*entity.Amenities](args), args.Error(1)
}

func (m *MockAmenityRepository) Update(ctx context.Context, amenities *entity.Amenities) error {
	return m.Called(ctx, amenities).Error(0)
}

func (m *MockAmenityRepository) DeleteByHostelID(ctx context.Context, hostelID uuid.UUID) error {
	return m.Called(ctx, hostelID).Error(0)
}

type MockRentRepository struct {
	mock.Mock
}

func NewMockRentRepository(t *testing.T) *MockRentRepository {
	m := &MockRentRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockRentRepository) Create(ctx context.Context, rent *entity.Rent) error {
	return m.Called(ctx, rent).Error(0)
}

func (m *MockRentRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Rent, error) {
	args := m.Called(ctx, hostelID)

	return first[[]*entity.Rent](args), args.Error(1)
}

func (m *MockRentRepository) FindByHostelAndSharingType(ctx context.Context, hostelID uuid.UUID, sharingType string) (*entity.Rent, error) {
	args := m.Called(ctx, hostelID, sharingType)

	return first[*entity.Rent](args), args.Error(1)
}

func (m *MockRentRepository) Update(ctx context.Context, rent *entity.Rent) error {
	return m.Called(ctx, rent).Error(0)
}

func (m *MockRentRepository) DeleteByHostelID(ctx context.Context, hostelID uuid.UUID, sharingType string) (int64, error) {
	args := m.Called(ctx, hostelID, sharingType)

	return first[int64](args), args.Error(1)
}
