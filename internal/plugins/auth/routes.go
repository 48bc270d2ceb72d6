package auth

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the public user-realm routes. The register and
// login endpoints accept credentials, so the caller passes per-route rate
// limiters to slow brute-force and credential stuffing attempts.
//
// RequireUser is exported separately for other plugins to apply to their
// route groups.
func RegisterRoutes(e *echo.Echo, h *Handler, loginLimiter, registerLimiter echo.MiddlewareFunc) {
	e.POST("/api/register", h.Register, registerLimiter)
	e.POST("/api/login", h.Login, loginLimiter)
	e.POST("/api/logout", h.Logout)
}
