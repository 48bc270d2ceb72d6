package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zaijudeng/toolstation/internal/config"
)

// CompletionClient is the outbound contract to the completion service.
// The service layer depends on this interface so tests can substitute a
// fake and assert whether an upstream call happened.
type CompletionClient interface {
	CreateCompletion(ctx context.Context, prompt string) (string, error)
}

// openAIClient calls the OpenAI-compatible chat completions endpoint with
// a bearer credential.
type openAIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewOpenAIClient creates a completion client from config. The HTTP client
// carries the configured timeout (default 30s) so a stuck upstream cannot
// hold requests open indefinitely.
func NewOpenAIClient(cfg config.OpenAIConfig) CompletionClient {
	return &openAIClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// --- Wire types for the chat completions API ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CreateCompletion sends the prompt as a single user message and returns
// the reply text from the first choice. Any transport failure, non-2xx
// status, or empty choice list is an error.
func (c *openAIClient) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Include a bounded slice of the body for logs; upstream error
		// bodies can be large.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion service returned %d: %s", resp.StatusCode, snippet)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return out.Choices[0].Message.Content, nil
}
