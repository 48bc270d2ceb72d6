package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/zaijudeng/toolstation/internal/apperror"
)

// contextKeyUserID stores the authenticated user's ID in the Echo context.
// Other plugins read it via GetUserID.
const contextKeyUserID = "auth_user_id"

// RequireUser returns middleware that validates the auth_token cookie and
// injects the user's identity into the request context. Missing, invalid,
// expired, wrong-realm, and deleted-subject tokens are all rejected with
// 401. Identity travels only in request-scoped context -- there is no
// global session state.
func RequireUser(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := getSessionToken(c)
			if tok == "" {
				return apperror.NewUnauthorized("Unauthorized: No token provided")
			}

			userID, err := service.ValidateToken(c.Request().Context(), tok)
			if err != nil {
				return err
			}

			c.Set(contextKeyUserID, userID)
			return next(c)
		}
	}
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated (middleware
// not applied).
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}
