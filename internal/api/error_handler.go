package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saariz/identity-service/internal/core/domain"
)

// responseEnvelope mirrors the handler package's envelope so that errors
// escaping the handlers render the same uniform shape.
type responseEnvelope struct {
	StatusCode    int      `json:"statusCode"`
	IsSuccess     bool     `json:"isSuccess"`
	Result        any      `json:"result"`
	ErrorMessages []string `json:"errorMessages"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the uniform response envelope on every error path.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, responseEnvelope{
			StatusCode:    code,
			IsSuccess:     false,
			ErrorMessages: []string{msg},
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Username does not exist!"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Password incorrect!"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Username already exists!"
	case errors.Is(err, domain.ErrRegistrationFailed):
		return http.StatusBadRequest, "Error while registering"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts, try again later"
	case errors.Is(err, domain.ErrTokenIssuance):
		return http.StatusBadRequest, "Username or Password incorrect!"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
