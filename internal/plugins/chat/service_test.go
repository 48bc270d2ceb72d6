package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/zaijudeng/toolstation/internal/apperror"
)

// --- Mocks ---

// mockCreditRepo implements CreditRepository with an in-memory counter
// guarded by a mutex, mirroring the conditional-UPDATE semantics.
type mockCreditRepo struct {
	mu     sync.Mutex
	credit int
	decErr error
	spends int
}

func (m *mockCreditRepo) DecrementCredit(ctx context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decErr != nil {
		return false, m.decErr
	}
	if m.credit <= 0 {
		return false, nil
	}
	m.credit--
	m.spends++
	return true, nil
}

// mockClient implements CompletionClient and counts invocations.
type mockClient struct {
	calls int64
	reply string
	err   error
}

func (m *mockClient) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// --- Tests ---

func TestComplete_Success(t *testing.T) {
	repo := &mockCreditRepo{credit: 5}
	client := &mockClient{reply: "hello there"}
	svc := NewChatService(repo, client)

	reply, err := svc.Complete(context.Background(), "user-1", "say hi")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if reply != "hello there" {
		t.Fatalf("reply = %q, want %q", reply, "hello there")
	}
	if repo.credit != 4 {
		t.Fatalf("credit after call = %d, want 4", repo.credit)
	}
}

func TestComplete_NoCreditBlocksUpstream(t *testing.T) {
	repo := &mockCreditRepo{credit: 0}
	client := &mockClient{reply: "should never be seen"}
	svc := NewChatService(repo, client)

	_, err := svc.Complete(context.Background(), "user-1", "say hi")

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 403 {
		t.Fatalf("expected 403 for exhausted credit, got %v", err)
	}
	if n := atomic.LoadInt64(&client.calls); n != 0 {
		t.Fatalf("upstream was called %d times with zero credit", n)
	}
}

func TestComplete_UpstreamFailureStillConsumesCredit(t *testing.T) {
	repo := &mockCreditRepo{credit: 3}
	client := &mockClient{err: errors.New("upstream exploded")}
	svc := NewChatService(repo, client)

	_, err := svc.Complete(context.Background(), "user-1", "say hi")

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 502 {
		t.Fatalf("expected 502 for upstream failure, got %v", err)
	}
	// No refund: the credit is spent before the upstream call.
	if repo.credit != 2 {
		t.Fatalf("credit after failed call = %d, want 2", repo.credit)
	}
}

func TestComplete_RepositoryError(t *testing.T) {
	repo := &mockCreditRepo{credit: 3, decErr: errors.New("db gone")}
	client := &mockClient{}
	svc := NewChatService(repo, client)

	_, err := svc.Complete(context.Background(), "user-1", "say hi")

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 500 {
		t.Fatalf("expected 500 for repository failure, got %v", err)
	}
	if n := atomic.LoadInt64(&client.calls); n != 0 {
		t.Fatalf("upstream was called %d times after repository failure", n)
	}
}

func TestComplete_ConcurrentSpendOfLastCredit(t *testing.T) {
	// One credit, many concurrent requests: exactly one wins, the counter
	// ends at zero, and the upstream is called exactly once.
	repo := &mockCreditRepo{credit: 1}
	client := &mockClient{reply: "ok"}
	svc := NewChatService(repo, client)

	const workers = 8

	var wg sync.WaitGroup
	var successes, forbidden int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Complete(context.Background(), "user-1", "say hi")
			if err == nil {
				atomic.AddInt64(&successes, 1)
				return
			}
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == 403 {
				atomic.AddInt64(&forbidden, 1)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	if forbidden != workers-1 {
		t.Fatalf("forbidden = %d, want %d", forbidden, workers-1)
	}
	if repo.credit != 0 {
		t.Fatalf("credit after race = %d, want 0", repo.credit)
	}
	if n := atomic.LoadInt64(&client.calls); n != 1 {
		t.Fatalf("upstream calls = %d, want exactly 1", n)
	}
}
