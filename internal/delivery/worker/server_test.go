package worker

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"pgbee/config"
	"pgbee/internal/delivery/worker/handler"
	mockUsecase "pgbee/internal/mocks/usecase"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	cfg := &config.Config{}
	push := handler.NewPushHandler(handler.PushHandlerParams{
		Config:   cfg,
		Logger:   logger,
		NotifyUC: mockUsecase.NewMockEnquiryNotificationUsecase(t),
	})

	return newEcho(cfg, logger, push)
}

func TestWorkerEcho_Health(t *testing.T) {
	e := newTestEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestWorkerEcho_PushBodyLimit(t *testing.T) {
	e := newTestEcho(t)

	body := `{"message":{"data":"` + strings.Repeat("A", 2<<20) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
