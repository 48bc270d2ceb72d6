package app

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zaijudeng/toolstation/internal/middleware"
	"github.com/zaijudeng/toolstation/internal/plugins/admin"
	"github.com/zaijudeng/toolstation/internal/plugins/auth"
	"github.com/zaijudeng/toolstation/internal/plugins/chat"
)

// RegisterRoutes constructs every plugin's repository/service/handler chain
// and registers all routes. This is the single place where the dependency
// graph is assembled.
func (a *App) RegisterRoutes() {
	e := a.Echo
	secret := []byte(a.Config.Auth.SecretKey)

	// Health check endpoint for container orchestration.
	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	// Rate limits for the credential-accepting endpoints: 10 login
	// attempts per IP per minute, 5 registrations.
	loginLimiter := middleware.RateLimit(a.Redis, 10, time.Minute)
	registerLimiter := middleware.RateLimit(a.Redis, 5, time.Minute)
	adminLoginLimiter := middleware.RateLimit(a.Redis, 10, time.Minute)

	// --- User realm ---
	userRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(userRepo, secret, a.Config.Auth.UserTokenTTL)
	authHandler := auth.NewHandler(authService, a.Config.Auth.UserTokenTTL)
	auth.RegisterRoutes(e, authHandler, loginLimiter, registerLimiter)

	// --- Credit-gated completion proxy ---
	creditRepo := chat.NewCreditRepository(a.DB)
	completionClient := chat.NewOpenAIClient(a.Config.OpenAI)
	chatService := chat.NewChatService(creditRepo, completionClient)
	chatHandler := chat.NewHandler(chatService)
	chat.RegisterRoutes(e, chatHandler, auth.RequireUser(authService))

	// --- Admin realm ---
	adminRepo := admin.NewAdminRepository(a.DB)
	adminService := admin.NewAdminService(adminRepo, secret, a.Config.Auth.AdminTokenTTL)
	adminHandler := admin.NewHandler(adminService, a.Config.Auth.AdminTokenTTL)
	admin.RegisterRoutes(e, adminHandler, admin.RequireAdmin(adminService), adminLoginLimiter)
}
