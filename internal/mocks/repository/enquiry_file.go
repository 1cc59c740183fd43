package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pgbee/internal/domain/entity"
)

type MockEnquiryRepository struct {
	mock.Mock
}

func NewMockEnquiryRepository(t *testing.T) *MockEnquiryRepository {
	m := &MockEnquiryRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockEnquiryRepository) Create(ctx context.Context, enquiry *entity.Enquiry) error {
	return m.Called(ctx, enquiry).Error(0)
}

func (m *MockEnquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Enquiry, error) {
	args := m.Called(ctx, id)

	return first[*entity.Enquiry](args), args.Error(1)
}

func (m *MockEnquiryRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Enquiry, error) {
	args := m.Called(ctx, hostelID)

	return first[[]*entity.Enquiry](args), args.Error(1)
}

func (m *MockEnquiryRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Enquiry, error) {
	args := m.Called(ctx, studentID)

	return first[[]*entity.Enquiry](args), args.Error(1)
}

func (m *MockEnquiryRepository) Update(ctx context.Context, enquiry *entity.Enquiry) error {
	return m.Called(ctx, enquiry).Error(0)
}

func (m *MockEnquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFileRepository struct {
	mock.Mock
}

func NewMockFileRepository(t *testing.T) *MockFileRepository {
	m := &MockFileRepository{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockFileRepository) Create(ctx context.Context, file *entity.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockFileRepository) FindByKey(ctx context.Context, key string) (*entity.File, error) {
	args := m.Called(ctx, key)

	return first[*entity.File](args), args.Error(1)
}

func (m *MockFileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.File, error) {
	args := m.Called(ctx, userID)

	return first[[]*entity.File](args), args.Error(1)
}
