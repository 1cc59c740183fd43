// Package middleware holds the echo middleware used only by the API server.
package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "pgbee/internal/delivery/context"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const bearerPrefix = "Bearer "

// AuthMiddleware gates protected routes on a valid access token.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

func NewAuthMiddleware(authUC usecase.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC, logger: logger}
}

// Authenticate resolves the caller and stores it with deliverycontext.SetIdentity.
// Missing, malformed, expired and orphaned tokens all end in 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return domainerrors.ErrUnauthorized
		}

		user, err := m.authUC.Authenticate(c.Request().Context(), token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Access token rejected", slog.String("error", err.Error()))

			if domainerrors.KindOf(err) == domainerrors.KindAuth {
				return err
			}
			if errors.Is(err, domainerrors.ErrUserNotFound) {
				return domainerrors.ErrUnauthorized
			}

			return errors.Wrap(err, "authenticate request")
		}

		deliverycontext.SetIdentity(c, user)

		return next(c)
	}
}

// extractToken reads the bearer token. The jwt cookie holds the refresh token
// and is only accepted by /auth/token/refresh and /auth/logout.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}
