package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"pgbee/config"
	"pgbee/internal/domain/constants"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/infra/pubsub"
	mockUsecase "pgbee/internal/mocks/usecase"
	"pgbee/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pushBody(t *testing.T, event *service.EnquiryEvent, attributes map[string]string) string {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var msg pubsub.PushMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = "m-1"
	msg.Subscription = "projects/p/subscriptions/notifier"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func enquiryEvent() *service.EnquiryEvent {
	return &service.EnquiryEvent{
		RequestID:  "req-from-event",
		EventType:  constants.EventTypeEnquiryCreated,
		EnquiryID:  "4f1c9a5e-4b55-4d8e-9a0b-7c2f3d1e8a01",
		HostelID:   "0b8f6c1d-2e3a-4c5b-8d7e-9f0a1b2c3d4e",
		HostelName: "Green Nest",
		OwnerID:    "7d2e5f8a-1b3c-4d6e-9f0a-2b4c6d8e0f12",
		StudentID:  "c3a1e2f4-5b6d-4e8f-9a0b-1c2d3e4f5a6b",
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func post(h *PushHandler, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/push", h.HandlePush)

	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, fn := range mutate {
		fn(req)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func newTestPushHandler(t *testing.T, cfg *config.Config) (*PushHandler, *mockUsecase.MockEnquiryNotificationUsecase) {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
	}
	uc := mockUsecase.NewMockEnquiryNotificationUsecase(t)

	return NewPushHandler(PushHandlerParams{Config: cfg, Logger: discardLogger(), NotifyUC: uc}), uc
}

func TestPushHandler_NotifiesOwner(t *testing.T) {
	h, uc := newTestPushHandler(t, nil)
	event := enquiryEvent()

	uc.On("NotifyOwner", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx != nil
	}), &usecase.EnquiryEventInput{
		EnquiryID:  event.EnquiryID,
		HostelID:   event.HostelID,
		HostelName: event.HostelName,
		OwnerID:    event.OwnerID,
		StudentID:  event.StudentID,
	}).Return("projects/p/messages/1", nil).Once()

	rec := post(h, pushBody(t, event, map[string]string{"request_id": "req-from-attr"}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_FailureStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deadline is retried", err: errors.Wrap(context.DeadlineExceeded, "send"), wantStatus: http.StatusServiceUnavailable},
		{name: "bad owner id is dropped", err: domainerrors.NewValidationError("ownerId must be a UUID"), wantStatus: http.StatusOK},
		{name: "unknown failure is acknowledged", err: errors.New("invalid registration"), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := newTestPushHandler(t, nil)
			uc.On("NotifyOwner", mock.Anything, mock.Anything).Return("", tt.err).Once()

			rec := post(h, pushBody(t, enquiryEvent(), nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPushHandler_MalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "data not base64", body: `{"message":{"data":"%%%"}}`},
		{name: "data not an event", body: `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("[1,2")) + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestPushHandler(t, nil)

			rec := post(h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPushHandler_IgnoresOtherEvents(t *testing.T) {
	h, _ := newTestPushHandler(t, nil)
	event := enquiryEvent()
	event.EventType = "review.created"

	rec := post(h, pushBody(t, event, nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPushHandler_VerifiesGooglePushToken(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{
		Provider:     constants.PubSubProviderGoogle,
		PushAudience: "https://notifier.pgbee.in/push",
	}}
	cfg.Env.Env = constants.EnvProduction

	t.Run("missing token", func(t *testing.T) {
		h, _ := newTestPushHandler(t, cfg)
		require.True(t, h.verifyPushAuth)

		rec := post(h, pushBody(t, enquiryEvent(), nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		h, _ := newTestPushHandler(t, cfg)
		h.validate = func(_ context.Context, _, _ string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Issuer: "https://evil.example.com"}, nil
		}

		rec := post(h, pushBody(t, enquiryEvent(), nil), func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer token")
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token uses configured audience", func(t *testing.T) {
		h, uc := newTestPushHandler(t, cfg)
		var gotAudience string
		h.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			gotAudience = audience

			return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
		}
		uc.On("NotifyOwner", mock.Anything, mock.Anything).Return("id", nil).Once()

		rec := post(h, pushBody(t, enquiryEvent(), nil), func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer token")
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://notifier.pgbee.in/push", gotAudience)
	})
}

func TestNewPushHandler_SkipsVerificationInDevelopment(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	cfg.Env.Env = constants.EnvDevelop

	h, _ := newTestPushHandler(t, cfg)

	assert.False(t, h.verifyPushAuth)
}
