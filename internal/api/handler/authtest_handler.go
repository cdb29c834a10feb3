package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saariz/identity-service/internal/api/middleware"
)

// AuthTestHandler exposes two probe endpoints for exercising the token
// middleware: one gated on authentication only, one on the Admin role.
type AuthTestHandler struct{}

func NewAuthTestHandler() *AuthTestHandler {
	return &AuthTestHandler{}
}

// Authenticated handles GET /api/authtest.
//
// @Summary      Check that the caller is authenticated
// @Tags         authtest
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      401  {object}  responseEnvelope
// @Router       /api/authtest [get]
func (h *AuthTestHandler) Authenticated(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}
	return c.String(http.StatusOK, "You are authenticated")
}

// AdminOnly handles GET /api/authtest/:id. The RBAC middleware has already
// verified the Admin role by the time this runs.
//
// @Summary      Check that the caller is authorized as Admin
// @Tags         authtest
// @Produce      plain
// @Security     BearerAuth
// @Param        id   path      int  true  "Any integer"
// @Success      200  {string}  string
// @Failure      401  {object}  responseEnvelope
// @Failure      403  {object}  responseEnvelope
// @Router       /api/authtest/{id} [get]
func (h *AuthTestHandler) AdminOnly(c echo.Context) error {
	return c.String(http.StatusOK, "You are authorized as Admin")
}

// authClaims is the claim set extracted from the request context.
type authClaims struct {
	FullName string
	UserID   string
	Email    string
	Role     string
}

// ctxClaims extracts the claims injected by the Auth middleware. A missing
// role claim means the middleware did not run; reject with 401.
func ctxClaims(c echo.Context) (authClaims, error) {
	role, _ := c.Get(middleware.CtxRole).(string)
	if role == "" {
		return authClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	claims := authClaims{Role: role}
	claims.FullName, _ = c.Get(middleware.CtxFullName).(string)
	claims.UserID, _ = c.Get(middleware.CtxUserID).(string)
	claims.Email, _ = c.Get(middleware.CtxEmail).(string)
	return claims, nil
}
