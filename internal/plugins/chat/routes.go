package chat

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the completion proxy route. requireUser is the
// user-realm session middleware from the auth plugin.
func RegisterRoutes(e *echo.Echo, h *Handler, requireUser echo.MiddlewareFunc) {
	e.POST("/api/openai", h.Complete, requireUser)
}
