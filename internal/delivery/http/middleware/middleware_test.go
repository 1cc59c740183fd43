package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pgbee/config"
	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/constants"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/infra/cache"
	mockUsecase "pgbee/internal/mocks/usecase"
)

type envelope struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(discardLogger()).HandleHTTPError

	return e
}

func serve(t *testing.T, e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

func whoami(c echo.Context) error {
	user, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return c.JSON(http.StatusOK, envelope{OK: false})
	}
	if _, ok := deliverycontext.IdentityFromContext(c.Request().Context()); !ok {
		return errors.New("identity missing from request context")
	}

	return c.JSON(http.StatusOK, envelope{OK: true, Message: user.Email})
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "meera@example.com", Role: &entity.Role{Name: entity.RoleStudent}}

	tests := []struct {
		name        string
		setup       func(req *http.Request, uc *mockUsecase.MockAuthUsecase)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "no token",
			setup:       func(*http.Request, *mockUsecase.MockAuthUsecase) {},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized access",
		},
		{
			name: "bearer token",
			setup: func(req *http.Request, uc *mockUsecase.MockAuthUsecase) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer good")
				uc.On("Authenticate", mock.Anything, "good").Return(user, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantMessage: "meera@example.com",
		},
		{
			name: "refresh cookie only",
			setup: func(req *http.Request, _ *mockUsecase.MockAuthUsecase) {
				req.AddCookie(&http.Cookie{Name: constants.RefreshCookieName, Value: "from-cookie"})
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized access",
		},
		{
			name: "non-bearer scheme",
			setup: func(req *http.Request, _ *mockUsecase.MockAuthUsecase) {
				req.Header.Set(echo.HeaderAuthorization, "Basic Zm9vOmJhcg==")
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized access",
		},
		{
			name: "invalid token",
			setup: func(req *http.Request, uc *mockUsecase.MockAuthUsecase) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer bad")
				uc.On("Authenticate", mock.Anything, "bad").Return(nil, domainerrors.ErrInvalidToken).Once()
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid Token",
		},
		{
			name: "subject deleted",
			setup: func(req *http.Request, uc *mockUsecase.MockAuthUsecase) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer orphan")
				uc.On("Authenticate", mock.Anything, "orphan").
					Return(nil, errors.Wrap(domainerrors.ErrUserNotFound, "lookup")).Once()
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized access",
		},
		{
			name: "store failure",
			setup: func(req *http.Request, uc *mockUsecase.MockAuthUsecase) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer any")
				uc.On("Authenticate", mock.Anything, "any").
					Return(nil, domainerrors.NewPersistenceError(errors.New("connection refused"), "find user")).Once()
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockUsecase.NewMockAuthUsecase(t)
			mw := NewAuthMiddleware(uc, discardLogger())

			e := newEcho()
			e.GET("/me", whoami, mw.Authenticate)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req, uc)

			rec, env := serve(t, e, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, env.Message)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := cache.NewRateLimiter(&config.Config{
		RateLimit: &config.RateLimitConfig{Enabled: true, Capacity: 2, RefillInterval: time.Minute},
	}, nil)
	require.NotNil(t, limiter)

	mw := NewRateLimitMiddleware(limiter, discardLogger())
	e := newEcho()
	e.POST("/auth/login", func(c echo.Context) error {
		return c.JSON(http.StatusOK, envelope{OK: true})
	}, mw.Limit("auth"))

	request := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":1234"

		return req
	}

	for range 2 {
		rec, _ := serve(t, e, request("10.0.0.1"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := serve(t, e, request("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests, please try again later", env.Message)
	assert.NotEmpty(t, rec.Header().Get(headerRetryAfter))
	assert.Equal(t, "2", rec.Header().Get(headerRateLimitLimit))

	// Buckets are per client.
	rec, _ = serve(t, e, request("10.0.0.2"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*service.RateDecision, error) {
	return nil, errors.New("redis down")
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	mw := NewRateLimitMiddleware(failingLimiter{}, discardLogger())
	e := newEcho()
	e.GET("/auth/google", func(c echo.Context) error {
		return c.JSON(http.StatusOK, envelope{OK: true})
	}, mw.Limit("auth"))

	rec, _ := serve(t, e, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRateLimitMiddleware_DisabledLimiter(t *testing.T) {
	assert.Nil(t, NewRateLimitMiddleware(nil, discardLogger()))
}

func TestErrorMiddleware_Classify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation error",
			err:         domainerrors.NewValidationError("email is required", "password is required"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid input data. email is required. password is required",
		},
		{
			name:        "wrapped duplicate",
			err:         errors.Wrap(domainerrors.NewDuplicateError("email"), "create user"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Duplicate field value: email",
		},
		{
			name:        "persistence detail is hidden",
			err:         domainerrors.NewPersistenceError(errors.New("pq: relation missing"), "select hostels"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Database error",
		},
		{
			name:        "operational app error",
			err:         domainerrors.ErrHostelForbidden,
			wantStatus:  http.StatusForbidden,
			wantMessage: "You are not allowed to modify this hostel",
		},
		{
			name:        "echo http error",
			err:         echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "route not found",
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Route /boom not found",
		},
		{
			name:        "unknown error",
			err:         errors.New("nil pointer somewhere"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			e.GET("/boom", func(echo.Context) error { return tt.err })

			rec, env := serve(t, e, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.False(t, env.OK)
			assert.Equal(t, "null", string(env.Data))
		})
	}
}

func TestErrorMiddleware_HeadHasNoBody(t *testing.T) {
	e := newEcho()
	e.HEAD("/boom", func(echo.Context) error { return domainerrors.ErrNotFound })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/boom", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
