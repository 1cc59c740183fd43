package middleware

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	deliverycontext "pgbee/internal/delivery/context"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/service"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRetryAfter         = "Retry-After"
)

// RateLimitMiddleware meters requests per client IP and route group.
type RateLimitMiddleware struct {
	limiter service.RateLimiter
	logger  *slog.Logger
}

// NewRateLimitMiddleware returns nil when limiter is nil, which disables limiting.
func NewRateLimitMiddleware(limiter service.RateLimiter, logger *slog.Logger) *RateLimitMiddleware {
	if limiter == nil {
		return nil
	}

	return &RateLimitMiddleware{limiter: limiter, logger: logger}
}

// Limit returns middleware keyed by scope and the caller's IP. A limiter
// failure lets the request through.
func (m *RateLimitMiddleware) Limit(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			decision, err := m.limiter.Allow(ctx, scope+":"+c.RealIP())
			if err != nil {
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rate limiter unavailable",
					slog.String("scope", scope), slog.String("error", err.Error()))

				return next(c)
			}

			h := c.Response().Header()
			h.Set(headerRateLimitLimit, strconv.Itoa(decision.Limit))
			h.Set(headerRateLimitRemaining, strconv.Itoa(decision.Remaining))

			if !decision.Allowed {
				retry := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				h.Set(headerRetryAfter, strconv.Itoa(retry))

				return domainerrors.ErrTooManyRequests
			}

			return next(c)
		}
	}
}
