package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zaijudeng/toolstation/internal/apperror"
	"github.com/zaijudeng/toolstation/internal/plugins/auth"
)

// sessionCookieName is the HTTP cookie carrying the admin session token.
// Deliberately distinct from the user realm's auth_token -- the two
// cookie namespaces never overlap.
const sessionCookieName = "admin_token"

// Handler handles HTTP requests for the admin realm: the JSON management
// API plus the browser-facing login and dashboard pages.
type Handler struct {
	service   AdminService
	cookieTTL time.Duration
}

// NewHandler creates a new admin handler with the given service.
func NewHandler(service AdminService, cookieTTL time.Duration) *Handler {
	return &Handler{service: service, cookieTTL: cookieTTL}
}

// --- JSON API ---

// Login authenticates an admin and sets the session cookie
// (POST /api/admin/login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	tok, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, tok, int(h.cookieTTL.Seconds()))

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// Logout clears the admin session cookie (POST /api/admin/logout).
func (h *Handler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// Users returns all registered users, newest first (GET /api/admin/users).
func (h *Handler) Users(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	// An empty table serializes as [] rather than null.
	if users == nil {
		users = []auth.User{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"users":   users,
	})
}

// ResetCalls sets a user's call counter back to the default grant
// (POST /api/admin/users/:id/reset-calls).
func (h *Handler) ResetCalls(c echo.Context) error {
	if err := h.service.ResetCredit(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// DeleteUser hard-deletes a user (DELETE /api/admin/users/:id).
func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// --- Browser pages ---

// LoginPage serves the admin login page (GET /admin/login). If the browser
// already has a valid admin session, go straight to the dashboard.
func (h *Handler) LoginPage(c echo.Context) error {
	if tok := getSessionToken(c); tok != "" {
		if _, err := h.service.ValidateToken(c.Request().Context(), tok); err == nil {
			return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		}
	}
	return c.HTML(http.StatusOK, adminLoginHTML)
}

// Dashboard serves the admin dashboard page (GET /admin/dashboard).
// RequireAdmin redirects unauthenticated browsers to /admin/login.
func (h *Handler) Dashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, adminDashboardHTML)
}

// --- Cookie helpers ---

// getSessionToken reads the admin session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the admin session cookie with the same flags as
// the user realm: HttpOnly, Secure, SameSite=Strict, path /.
func setSessionCookie(c echo.Context, tok string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// clearSessionCookie removes the admin session cookie.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
