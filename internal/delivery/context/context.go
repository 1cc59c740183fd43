// Package context carries request-scoped values (request ID, logger and the
// authenticated identity) across echo.Context and context.Context.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pgbee/internal/domain/entity"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeyIdentity  ContextKey = "identity"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the request ID stored on c, or a fresh UUID.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" when ctx carries no request ID.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context has none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetIdentity records the authenticated user on both the echo context and
// the request context, so handlers and usecases see the same identity.
func SetIdentity(c echo.Context, user *entity.User) {
	c.Set(string(KeyIdentity), user)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), KeyIdentity, user)))
}

// GetIdentity returns the user resolved by the authorization middleware.
func GetIdentity(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyIdentity)).(*entity.User)

	return user, ok && user != nil
}

// IdentityFromContext is GetIdentity for code that only holds a context.Context.
func IdentityFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(KeyIdentity).(*entity.User)

	return user, ok && user != nil
}
