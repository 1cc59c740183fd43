// Package service holds testify mocks for the domain service interfaces.
package service

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	domainservice "pgbee/internal/domain/service"
)

var (
	_ domainservice.QRCodeService       = (*MockQRCodeService)(nil)
	_ domainservice.EventPublisher      = (*MockEventPublisher)(nil)
	_ domainservice.NotificationService = (*MockNotificationService)(nil)
	_ domainservice.FileStorage         = (*MockFileStorage)(nil)
	_ domainservice.OAuthService        = (*MockOAuthService)(nil)
)

func register(t *testing.T, m interface{ AssertExpectations(mock.TestingT) bool }) {
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockQRCodeService) GenerateHostelQR(hostelID uuid.UUID) ([]byte, error) {
	args := m.Called(hostelID)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

func (m *MockQRCodeService) ParseHostelQR(content string) (uuid.UUID, error) {
	args := m.Called(content)

	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockEventPublisher) PublishEnquiryEvent(ctx context.Context, event *domainservice.EnquiryEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService(t *testing.T) *MockNotificationService {
	m := &MockNotificationService{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockNotificationService) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	args := m.Called(ctx, topic, title, body, data)

	return args.String(0), args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
}

func NewMockFileStorage(t *testing.T) *MockFileStorage {
	m := &MockFileStorage{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockFileStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (*domainservice.StoredObject, error) {
	args := m.Called(ctx, key, contentType, r)
	obj, _ := args.Get(0).(*domainservice.StoredObject)

	return obj, args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockFileStorage) PublicURL(key string) string {
	return m.Called(key).String(0)
}

type MockOAuthService struct {
	mock.Mock
}

func NewMockOAuthService(t *testing.T) *MockOAuthService {
	m := &MockOAuthService{}
	m.Test(t)
	register(t, m)

	return m
}

func (m *MockOAuthService) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthService) FetchProfile(ctx context.Context, code string) (*domainservice.OAuthProfile, error) {
	args := m.Called(ctx, code)
	profile, _ := args.Get(0).(*domainservice.OAuthProfile)

	return profile, args.Error(1)
}
