package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zaijudeng/toolstation/internal/apperror"
)

// ChatService defines the business logic contract for the completion proxy.
type ChatService interface {
	Complete(ctx context.Context, userID, prompt string) (string, error)
}

// chatService implements ChatService over the credit repository and the
// completion client.
type chatService struct {
	repo   CreditRepository
	client CompletionClient
}

// NewChatService creates a new chat service with the given dependencies.
func NewChatService(repo CreditRepository, client CompletionClient) ChatService {
	return &chatService{repo: repo, client: client}
}

// Complete spends one credit and forwards the prompt to the completion
// service. The credit is spent before the upstream call and is not
// refunded if the upstream fails -- a failed completion still consumes
// one credit. When no credit remains, the upstream is never contacted.
func (s *chatService) Complete(ctx context.Context, userID, prompt string) (string, error) {
	ok, err := s.repo.DecrementCredit(ctx, userID)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("spending credit: %w", err))
	}
	if !ok {
		return "", apperror.NewForbidden("You have no API calls remaining.")
	}

	reply, err := s.client.CreateCompletion(ctx, prompt)
	if err != nil {
		slog.Error("completion call failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return "", apperror.NewBadGateway(err)
	}

	return reply, nil
}
