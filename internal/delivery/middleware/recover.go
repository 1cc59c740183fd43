package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/errors"
)

// NewRecoverMiddleware turns a panic into an error returned up the chain, so
// it must be registered after LoggerMiddleware for the 500 to be logged.
func NewRecoverMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableStackAll:     true,
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), logger).Error("Recovered from panic",
				slog.String("panic", err.Error()),
				slog.String("stack", string(stack)),
			)

			return errors.Wrap(err, "panic recovered")
		},
	})
}
