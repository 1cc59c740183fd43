package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"pgbee/config"
	deliverycontext "pgbee/internal/delivery/context"
)

// LoggerMiddleware logs the completion of every request. In debug mode the
// arrival of the request is logged as well.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// Handle must run after RequestIDMiddleware so the request logger is in place.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()
		logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)

		if m.debug {
			logger.Debug("Incoming request",
				slog.String("method", req.Method),
				slog.String("uri", req.URL.Path),
				slog.String("remote_ip", c.RealIP()),
			)
		}

		err := next(c)
		if err != nil {
			// Run the error handler now so the logged status is the one sent.
			c.Error(err)
		}

		m.logCompletion(c, logger, start, err)

		return nil
	}
}

func (m *LoggerMiddleware) logCompletion(c echo.Context, logger *slog.Logger, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}
	if req.URL.RawQuery != "" {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if err != nil {
		fields = append(fields, slog.String("error", err.Error()))
	}

	level := slog.LevelInfo
	switch {
	case res.Status >= 500:
		level = slog.LevelError
	case res.Status >= 400:
		level = slog.LevelWarn
	}

	logger.LogAttrs(req.Context(), level, "HTTP request", fields...)
}
