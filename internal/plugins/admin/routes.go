package admin

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the admin realm routes: the browser pages and the
// management API. The login endpoint accepts credentials, so the caller
// passes a rate limiter for it.
func RegisterRoutes(e *echo.Echo, h *Handler, requireAdmin, loginLimiter echo.MiddlewareFunc) {
	// Browser pages.
	e.GET("/admin/login", h.LoginPage)
	e.GET("/admin/dashboard", h.Dashboard, requireAdmin)

	// Management API.
	e.POST("/api/admin/login", h.Login, loginLimiter)
	// Logout only clears the cookie, so a stale session may still log out.
	e.POST("/api/admin/logout", h.Logout)
	e.GET("/api/admin/users", h.Users, requireAdmin)
	e.POST("/api/admin/users/:id/reset-calls", h.ResetCalls, requireAdmin)
	e.DELETE("/api/admin/users/:id", h.DeleteUser, requireAdmin)
}
