package chat

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zaijudeng/toolstation/internal/apperror"
	"github.com/zaijudeng/toolstation/internal/plugins/auth"
)

// Handler handles HTTP requests for the completion proxy.
type Handler struct {
	service ChatService
}

// NewHandler creates a new chat handler with the given service.
func NewHandler(service ChatService) *Handler {
	return &Handler{service: service}
}

// Complete proxies a prompt to the completion service (POST /api/openai).
// Requires a user session; RequireUser puts the user ID in context.
func (h *Handler) Complete(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if req.Prompt == "" {
		return apperror.NewBadRequest("Prompt is required.")
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		return apperror.NewUnauthorized("Unauthorized: No token provided")
	}

	reply, err := h.service.Complete(c.Request().Context(), userID, req.Prompt)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"reply":   reply,
	})
}
