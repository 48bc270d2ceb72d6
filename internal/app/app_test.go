package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zaijudeng/toolstation/internal/apperror"
	"github.com/zaijudeng/toolstation/internal/config"
)

// newTestApp builds an App without live DB or Redis connections. The error
// handler under test never touches either.
func newTestApp() *App {
	cfg := &config.Config{
		Env:         "development",
		Port:        0,
		CORSOrigins: []string{"http://localhost:5173"},
	}
	return New(cfg, nil, nil)
}

// handleError runs one error through the custom error handler.
func handleError(a *App, err error, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	a.errorHandler(err, c)
	return rec
}

func TestErrorHandler_AppError(t *testing.T) {
	a := newTestApp()

	rec := handleError(a, apperror.NewForbidden("You have no API calls remaining."), "/api/openai")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Success {
		t.Error("success = true in an error body")
	}
	if body.Message != "You have no API calls remaining." {
		t.Errorf("message = %q", body.Message)
	}
}

func TestErrorHandler_InternalErrorHidesCause(t *testing.T) {
	a := newTestApp()

	rec := handleError(a, apperror.NewInternal(errors.New("dsn: secret stuff")), "/api/register")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// The underlying cause must never reach the client.
	if body := rec.Body.String(); strings.Contains(body, "secret stuff") {
		t.Fatalf("response leaked internal details: %s", body)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	a := newTestApp()

	rec := handleError(a, echo.NewHTTPError(http.StatusNotFound, "Not Found"), "/nope")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestErrorHandler_AdminPage401Redirects(t *testing.T) {
	a := newTestApp()

	rec := handleError(a, apperror.NewUnauthorized("Unauthorized: No token provided"), "/admin/dashboard")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/admin/login" {
		t.Fatalf("redirect location = %q, want /admin/login", loc)
	}
}

func TestErrorHandler_AdminAPI401StaysJSON(t *testing.T) {
	a := newTestApp()

	rec := handleError(a, apperror.NewUnauthorized("Unauthorized: Invalid token"), "/api/admin/users")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Message != "Unauthorized: Invalid token" {
		t.Errorf("message = %q", body.Message)
	}
}
