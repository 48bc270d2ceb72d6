// Package admin implements the admin realm: a separate authentication
// domain (admin_token cookie) with user management endpoints and the
// browser-facing panel pages. Admin accounts are provisioned out-of-band
// via cmd/adminctl -- there is no self-registration.
package admin

import (
	"time"
)

// Admin is an administrator account. Read-only at runtime apart from login.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
