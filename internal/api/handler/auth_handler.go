package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/saariz/identity-service/internal/api/metrics"
	"github.com/saariz/identity-service/internal/core/domain"
	"github.com/saariz/identity-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  responseEnvelope
// @Failure      400   {object}  responseEnvelope
// @Failure      404   {object}  responseEnvelope
// @Failure      429   {object}  responseEnvelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	start := time.Now()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failEnvelope(http.StatusBadRequest, "invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failEnvelope(http.StatusBadRequest, err.Error()))
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status, msg, label := loginError(err)
		metrics.LoginsTotal.WithLabelValues(label).Inc()
		return c.JSON(status, failEnvelope(status, msg))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, okEnvelope(http.StatusOK, result))
}

// Register creates a new user account and assigns its role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  responseEnvelope
// @Failure      400   {object}  responseEnvelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failEnvelope(http.StatusBadRequest, "invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failEnvelope(http.StatusBadRequest, err.Error()))
	}

	err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		status, msg, label := registerError(err)
		metrics.RegistrationsTotal.WithLabelValues(label).Inc()
		return c.JSON(status, failEnvelope(status, msg))
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, okEnvelope(http.StatusOK, nil))
}

// loginError maps a service error to HTTP status, user-facing message, and
// metrics label. Every branch sets an explicit status; the unknown-user
// branch deliberately uses 404 while credential failures use 400.
func loginError(err error) (status int, msg, label string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Username does not exist!", "user_not_found"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts, try again later", "throttled"
	case errors.Is(err, domain.ErrTokenIssuance):
		return http.StatusBadRequest, "Username or Password incorrect!", "error"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Password incorrect!", "invalid_password"
	default:
		return http.StatusInternalServerError, "internal server error", "error"
	}
}

// registerError maps a service error to HTTP status, message, and metrics
// label. Unexpected failures collapse into the generic registration message
// rather than leaking internal detail.
func registerError(err error) (status int, msg, label string) {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Username already exists!", "duplicate"
	default:
		return http.StatusBadRequest, "Error while registering", "error"
	}
}
