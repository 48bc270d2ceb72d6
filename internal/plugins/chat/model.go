// Package chat implements the credit-gated completion proxy. Each call
// spends one unit of the authenticated user's call credit and forwards the
// prompt to the external completion service.
package chat

// ChatRequest is the body of POST /api/openai.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}
