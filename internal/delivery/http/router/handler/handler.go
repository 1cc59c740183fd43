// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/delivery/http/response"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
)

// bindAndValidate decodes the request into req and runs the echo validator.
// A malformed body becomes a validation error rather than echo's 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if msg, ok := httpErr.Message.(string); ok {
				return domainerrors.NewValidationError(msg)
			}
		}

		return domainerrors.NewValidationError("request body is malformed")
	}

	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// paramUUID parses a path parameter as a UUID.
func paramUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidID.WithDetails(name)
	}

	return id, nil
}

// currentUser returns the identity stored by the auth middleware.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, "Service is healthy", echo.Map{"status": "ok"})
}
