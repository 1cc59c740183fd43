package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/delivery/http/response"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
)

// ErrorMiddleware classifies every failure a handler or middleware returns.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := m.classify(err, c)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)

		return
	}
	_ = response.Error(c, status, message)
}

func (m *ErrorMiddleware) classify(err error, c echo.Context) (int, string) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if !appErr.IsOperational() {
			logger.Error("Persistence failure",
				slog.String("path", c.Request().URL.Path),
				slog.String("error", errors.Verbose(err)),
			)
		}

		return appErr.HTTPCode(), appErr.Message()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusNotFound {
			return http.StatusNotFound, fmt.Sprintf("Route %s not found", c.Request().URL.Path)
		}

		return httpErr.Code, httpMessage(httpErr)
	}

	logger.Error("Unhandled error",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
		slog.String("error", errors.Verbose(err)),
	)

	return domainerrors.ErrInternalError.HTTPCode(), domainerrors.ErrInternalError.Message()
}

func httpMessage(httpErr *echo.HTTPError) string {
	if msg, ok := httpErr.Message.(string); ok {
		return msg
	}
	if httpErr.Message == nil {
		return http.StatusText(httpErr.Code)
	}

	return fmt.Sprint(httpErr.Message)
}
