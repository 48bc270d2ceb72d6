package admin

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zaijudeng/toolstation/internal/apperror"
)

// contextKeyAdminID stores the authenticated admin's ID in the Echo context.
const contextKeyAdminID = "admin_id"

// RequireAdmin returns middleware that validates the admin_token cookie
// and injects the admin's identity into the request context. API requests
// get a 401 JSON response on failure; browser requests (the panel pages)
// are redirected to the login page. A user-realm token presented here is
// rejected like any other invalid token.
func RequireAdmin(service AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := getSessionToken(c)
			if tok == "" {
				return rejectAdmin(c, apperror.NewUnauthorized("Unauthorized: No token provided"))
			}

			adminID, err := service.ValidateToken(c.Request().Context(), tok)
			if err != nil {
				// Stale or foreign cookie -- clear it so the browser
				// doesn't keep resubmitting it.
				clearSessionCookie(c)
				return rejectAdmin(c, err)
			}

			c.Set(contextKeyAdminID, adminID)
			return next(c)
		}
	}
}

// rejectAdmin picks the rejection style by surface: JSON for the API,
// redirect-to-login for the browser-facing panel pages.
func rejectAdmin(c echo.Context, err error) error {
	if strings.HasPrefix(c.Request().URL.Path, "/api") {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

// GetAdminID retrieves the authenticated admin's ID from the Echo context.
// Returns empty string if the request is not authenticated.
func GetAdminID(c echo.Context) string {
	id, ok := c.Get(contextKeyAdminID).(string)
	if !ok {
		return ""
	}
	return id
}
