// Package response writes the {ok, message, data} envelope every endpoint returns.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response.
type Envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success writes a successful envelope. A nil data is sent as an empty object.
func Success(c echo.Context, statusCode int, message string, data any) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if data == nil {
		data = echo.Map{}
	}

	return c.JSON(statusCode, Envelope{
		OK:      true,
		Message: message,
		Data:    data,
	})
}

// Error writes a failed envelope with null data. Handlers return errors
// instead; this is for the error classifier and middleware.
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		OK:      false,
		Message: message,
		Data:    nil,
	})
}
