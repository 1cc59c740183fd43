// Package usecase holds testify mocks for the usecase interfaces consumed by
// the delivery layer.
package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pgbee/internal/domain/entity"
	"pgbee/internal/usecase"
)

var (
	_ usecase.AuthUsecase                = (*MockAuthUsecase)(nil)
	_ usecase.HostelUsecase              = (*MockHostelUsecase)(nil)
	_ usecase.ReviewUsecase              = (*MockReviewUsecase)(nil)
	_ usecase.FileUsecase                = (*MockFileUsecase)(nil)
	_ usecase.EnquiryNotificationUsecase = (*MockEnquiryNotificationUsecase)(nil)
)

func register(t *testing.T, m interface{ AssertExpectations(mock.TestingT) bool }) {
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func first[T any](args mock.Arguments) T {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T)
	}

	return zero
}

type MockAuthUsecase struct {
	mock.Mock
}

func NewMockAuthUsecase(t *testing.T) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockAuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*entity.User, error) {
	args := m.Called(ctx, input)

	return first[*entity.User](args), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)

	return first[*usecase.AuthOutput](args), args.Error(1)
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, refreshToken)

	return first[*usecase.AuthOutput](args), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthUsecase) GoogleAuthURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func (m *MockAuthUsecase) GoogleCallback(ctx context.Context, code, state string) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, code, state)

	return first[*usecase.AuthOutput](args), args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	args := m.Called(ctx, accessToken)

	return first[*entity.User](args), args.Error(1)
}

type MockHostelUsecase struct {
	mock.Mock
}

func NewMockHostelUsecase(t *testing.T) *MockHostelUsecase {
	m := &MockHostelUsecase{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockHostelUsecase) Create(ctx context.Context, userID uuid.UUID, input *usecase.HostelInput) (*entity.Hostel, error) {
	args := m.Called(ctx, userID, input)

	return first[*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelUsecase) List(ctx context.Context) ([]*entity.Hostel, error) {
	args := m.Called(ctx)

	return first[[]*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Hostel, error) {
	args := m.Called(ctx, userID)

	return first[[]*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	args := m.Called(ctx, id)

	return first[*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelUsecase) Update(ctx context.Context, userID, id uuid.UUID, patch *usecase.HostelPatch) (*entity.Hostel, error) {
	args := m.Called(ctx, userID, id, patch)

	return first[*entity.Hostel](args), args.Error(1)
}

func (m *MockHostelUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockHostelUsecase) Nearby(ctx context.Context, query *usecase.NearbyQuery) ([]*entity.NearbyHostel, error) {
	args := m.Called(ctx, query)

	return first[[]*entity.NearbyHostel](args), args.Error(1)
}

func (m *MockHostelUsecase) QRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)

	return first[[]byte](args), args.Error(1)
}

type MockReviewUsecase struct {
	mock.Mock
}

func NewMockReviewUsecase(t *testing.T) *MockReviewUsecase {
	m := &MockReviewUsecase{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockReviewUsecase) Create(ctx context.Context, userID uuid.UUID, input *usecase.ReviewInput) (*entity.Review, error) {
	args := m.Called(ctx, userID, input)

	return first[*entity.Review](args), args.Error(1)
}

func (m *MockReviewUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)

	return first[*entity.Review](args), args.Error(1)
}

func (m *MockReviewUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, userID)

	return first[[]*entity.Review](args), args.Error(1)
}

func (m *MockReviewUsecase) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, hostelID)

	return first[[]*entity.Review](args), args.Error(1)
}

func (m *MockReviewUsecase) Update(ctx context.Context, userID, id uuid.UUID, patch *usecase.ReviewPatch) (*entity.Review, error) {
	args := m.Called(ctx, userID, id, patch)

	return first[*entity.Review](args), args.Error(1)
}

func (m *MockReviewUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockFileUsecase struct {
	mock.Mock
}

func NewMockFileUsecase(t *testing.T) *MockFileUsecase {
	m := &MockFileUsecase{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockFileUsecase) Upload(ctx context.Context, input *usecase.UploadInput) (*entity.File, error) {
	args := m.Called(ctx, input)

	return first[*entity.File](args), args.Error(1)
}

func (m *MockFileUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.File, error) {
	args := m.Called(ctx, userID)

	return first[[]*entity.File](args), args.Error(1)
}

func (m *MockFileUsecase) GetByKey(ctx context.Context, key string) (*entity.File, error) {
	args := m.Called(ctx, key)

	return first[*entity.File](args), args.Error(1)
}

type MockEnquiryNotificationUsecase struct {
	mock.Mock
}

func NewMockEnquiryNotificationUsecase(t *testing.T) *MockEnquiryNotificationUsecase {
	m := &MockEnquiryNotificationUsecase{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockEnquiryNotificationUsecase) NotifyOwner(ctx context.Context, event *usecase.EnquiryEventInput) (string, error) {
	args := m.Called(ctx, event)

	return args.String(0), args.Error(1)
}
