package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgbee/config"
	deliverycontext "pgbee/internal/delivery/context"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		want     string
	}{
		{name: "keeps client id", incoming: "client-123", want: "client-123"},
		{name: "generates when missing", incoming: "", want: "generated"},
		{name: "replaces id with spaces", incoming: "a b", want: "generated"},
		{name: "replaces oversized id", incoming: strings.Repeat("x", maxRequestIDLength+1), want: "generated"},
		{name: "replaces non ascii id", incoming: "idé", want: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRequestIDMiddleware(slog.New(slog.DiscardHandler))
			m.generate = func() string { return "generated" }

			e := echo.New()
			var fromCtx, fromEcho string
			e.GET("/", func(c echo.Context) error {
				fromCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				fromEcho = deliverycontext.GetRequestID(c)

				return c.NoContent(http.StatusOK)
			}, m.Process)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Header().Get(deliverycontext.HeaderXRequestID))
			assert.Equal(t, tt.want, fromCtx)
			assert.Equal(t, tt.want, fromEcho)
		})
	}
}

func TestLoggerMiddleware_LogsStatusFromErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = true

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process, NewLoggerMiddleware(logger, cfg).Handle)
	e.GET("/missing", func(echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "gone")
	})
	e.GET("/ok", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing?x=1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "Incoming request")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, `query="x=1"`)
	assert.Contains(t, out, "request_id=")

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "status=204")
}

func TestRecoverMiddleware_PanicIsLoggedAsCompletedRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	e.Use(
		NewRequestIDMiddleware(logger).Process,
		NewLoggerMiddleware(logger, &config.Config{}).Handle,
		NewRecoverMiddleware(logger),
	)
	e.GET("/panic", func(echo.Context) error {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `msg="Recovered from panic"`)
	assert.Contains(t, out, "panic=boom")
	assert.Contains(t, out, `msg="HTTP request"`)
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "status=500")
	assert.Contains(t, out, "uri=/panic")
	assert.Contains(t, out, `error="panic recovered: boom"`)
}
