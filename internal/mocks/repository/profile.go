package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pgbee/internal/domain/entity"
)

type MockOwnerRepository struct {
	mock.Mock
}

func NewMockOwnerRepository(t *testing.T) *MockOwnerRepository {
	m := &MockOwnerRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *entity.Owner) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	args := m.Called(ctx, id)

	return first[*entity.Owner](args), args.Error(1)
}

func (m *MockOwnerRepository) FindAll(ctx context.Context) ([]*entity.Owner, error) {
	args := m.Called(ctx)

	return first[[]*entity.Owner](args), args.Error(1)
}

func (m *MockOwnerRepository) Update(ctx context.Context, owner *entity.Owner) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockStudentRepository struct {
	mock.Mock
}

func NewMockStudentRepository(t *testing.T) *MockStudentRepository {
	m := &MockStudentRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockStudentRepository) Create(ctx context.Context, student *entity.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	args := m.Called(ctx, id)

	return first[*entity.Student](args), args.Error(1)
}

func (m *MockStudentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Student, error) {
	args := m.Called(ctx, userID)

	return first[*entity.Student](args), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *entity.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
