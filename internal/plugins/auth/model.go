// Package auth handles the user realm: registration, login, logout, and the
// session middleware protecting user API routes. Sessions are stateless
// signed tokens in the auth_token cookie -- nothing is stored server-side.
package auth

import (
	"time"
)

// DefaultAPICalls is the call credit granted to every new account.
const DefaultAPICalls = 10

// User is a registered account. Database scanning and JSON marshaling use
// this struct directly.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"` // Never expose in JSON responses.
	APICallsRemaining int       `json:"api_calls_remaining"`
	CreatedAt         time.Time `json:"created_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
