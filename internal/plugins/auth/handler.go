package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zaijudeng/toolstation/internal/apperror"
)

// sessionCookieName is the HTTP cookie carrying the user session token.
const sessionCookieName = "auth_token"

// minPasswordLength is enforced at registration. The hasher itself accepts
// any string -- length policy is a handler concern.
const minPasswordLength = 6

// Handler handles HTTP requests for the user realm. Handlers are thin:
// they bind the request, call the service, and render the response. No
// business logic lives here.
type Handler struct {
	service   AuthService
	cookieTTL time.Duration
}

// NewHandler creates a new auth handler with the given service. cookieTTL
// should match the token TTL so the cookie and the token expire together.
func NewHandler(service AuthService, cookieTTL time.Duration) *Handler {
	return &Handler{service: service, cookieTTL: cookieTTL}
}

// Register creates a new account (POST /api/register).
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if req.Email == "" || len(req.Password) < minPasswordLength {
		return apperror.NewBadRequest("Invalid email or password (must be at least 6 characters).")
	}

	if _, err := h.service.Register(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "User registered successfully.",
	})
}

// Login authenticates a user and sets the session cookie (POST /api/login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	tok, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, tok, int(h.cookieTTL.Seconds()))

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged in successfully.",
	})
}

// Logout clears the session cookie (POST /api/logout). The token itself
// stays valid until it expires -- there is no server-side revocation list.
func (h *Handler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie: HttpOnly so JS can't read it,
// Secure, and SameSite=Strict so browsers never attach it to cross-site
// requests.
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

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
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
