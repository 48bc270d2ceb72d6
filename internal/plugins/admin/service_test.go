package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zaijudeng/toolstation/internal/apperror"
	"github.com/zaijudeng/toolstation/internal/password"
	"github.com/zaijudeng/toolstation/internal/plugins/auth"
	"github.com/zaijudeng/toolstation/internal/token"
)

var testSecret = []byte("test-secret")

// mockAdminRepo implements AdminRepository for testing.
type mockAdminRepo struct {
	findByUsernameFn func(ctx context.Context, username string) (*Admin, error)
	findByIDFn       func(ctx context.Context, id string) (*Admin, error)
	listUsersFn      func(ctx context.Context) ([]auth.User, error)
	resetCreditFn    func(ctx context.Context, userID string, value int) error
	deleteUserFn     func(ctx context.Context, userID string) error
}

func (m *mockAdminRepo) FindAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, apperror.NewNotFound("admin not found")
}

func (m *mockAdminRepo) FindAdminByID(ctx context.Context, id string) (*Admin, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("admin not found")
}

func (m *mockAdminRepo) CreateAdmin(ctx context.Context, admin *Admin) error {
	return nil
}

func (m *mockAdminRepo) ListUsers(ctx context.Context) ([]auth.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockAdminRepo) ResetCredit(ctx context.Context, userID string, value int) error {
	if m.resetCreditFn != nil {
		return m.resetCreditFn(ctx, userID, value)
	}
	return nil
}

func (m *mockAdminRepo) DeleteUser(ctx context.Context, userID string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

// hashFor produces a real argon2id hash for test fixtures.
func hashFor(t *testing.T, plaintext string) string {
	t.Helper()
	h, err := password.Hash(plaintext)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}
	return h
}

// --- Login ---

func TestAdminLogin_Success(t *testing.T) {
	stored := &Admin{
		ID:           "admin-1",
		Username:     "ops",
		PasswordHash: hashFor(t, "hunter22"),
	}
	repo := &mockAdminRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*Admin, error) {
			if username != "ops" {
				return nil, apperror.NewNotFound("admin not found")
			}
			return stored, nil
		},
	}
	svc := NewAdminService(repo, testSecret, time.Hour)

	tok, err := svc.Login(context.Background(), "ops", "hunter22")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	subject, err := token.Verify(tok, token.RealmAdmin, testSecret)
	if err != nil {
		t.Fatalf("issued token failed admin-realm verification: %v", err)
	}
	if subject != "admin-1" {
		t.Fatalf("token subject = %q, want admin-1", subject)
	}

	// The admin token must not open the user realm.
	if _, err := token.Verify(tok, token.RealmUser, testSecret); err == nil {
		t.Fatal("admin token accepted by user realm")
	}
}

func TestAdminLogin_FailuresAreIndistinguishable(t *testing.T) {
	stored := &Admin{
		ID:           "admin-1",
		Username:     "ops",
		PasswordHash: hashFor(t, "hunter22"),
	}
	repo := &mockAdminRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*Admin, error) {
			if username == "ops" {
				return stored, nil
			}
			return nil, apperror.NewNotFound("admin not found")
		},
	}
	svc := NewAdminService(repo, testSecret, time.Hour)

	_, errUnknown := svc.Login(context.Background(), "nobody", "hunter22")
	_, errWrongPw := svc.Login(context.Background(), "ops", "wrong")

	var appUnknown, appWrongPw *apperror.AppError
	if !errors.As(errUnknown, &appUnknown) || !errors.As(errWrongPw, &appWrongPw) {
		t.Fatalf("expected AppErrors, got %v / %v", errUnknown, errWrongPw)
	}
	if appUnknown.Code != 401 || appWrongPw.Code != 401 {
		t.Fatalf("expected 401/401, got %d/%d", appUnknown.Code, appWrongPw.Code)
	}
	if appUnknown.Message != appWrongPw.Message {
		t.Fatalf("messages differ: %q vs %q", appUnknown.Message, appWrongPw.Message)
	}
}

// --- ValidateToken ---

func TestAdminValidateToken_UserRealmRejected(t *testing.T) {
	repo := &mockAdminRepo{
		findByIDFn: func(ctx context.Context, id string) (*Admin, error) {
			return &Admin{ID: id}, nil
		},
	}
	svc := NewAdminService(repo, testSecret, time.Hour)

	tok, err := token.Issue("user-1", token.RealmUser, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.ValidateToken(context.Background(), tok)

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 401 {
		t.Fatalf("expected 401 for user-realm token, got %v", err)
	}
}

func TestAdminValidateToken_DeletedAdminRejected(t *testing.T) {
	repo := &mockAdminRepo{} // FindAdminByID defaults to NotFound.
	svc := NewAdminService(repo, testSecret, time.Hour)

	tok, err := token.Issue("gone-admin", token.RealmAdmin, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), tok); err == nil {
		t.Fatal("token for deleted admin was accepted")
	}
}

// --- User management ---

func TestResetCredit_UsesDefaultGrant(t *testing.T) {
	var gotID string
	var gotValue int
	repo := &mockAdminRepo{
		resetCreditFn: func(ctx context.Context, userID string, value int) error {
			gotID, gotValue = userID, value
			return nil
		},
	}
	svc := NewAdminService(repo, testSecret, time.Hour)

	if err := svc.ResetCredit(context.Background(), "user-3"); err != nil {
		t.Fatalf("ResetCredit error: %v", err)
	}
	if gotID != "user-3" {
		t.Fatalf("reset targeted %q, want user-3", gotID)
	}
	if gotValue != auth.DefaultAPICalls {
		t.Fatalf("reset value = %d, want %d", gotValue, auth.DefaultAPICalls)
	}
}

func TestResetCredit_UnknownUser(t *testing.T) {
	repo := &mockAdminRepo{
		resetCreditFn: func(ctx context.Context, userID string, value int) error {
			return apperror.NewNotFound("user not found")
		},
	}
	svc := NewAdminService(repo, testSecret, time.Hour)

	err := svc.ResetCredit(context.Background(), "missing")

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404 for unknown user, got %v", err)
	}
}

func TestDeleteUser_UnknownUser(t *testing.T) {
	repo := &mockAdminRepo{
		deleteUserFn: func(ctx context.Context, userID string) error {
			return apperror.NewNotFound("user not found")
		},
	}
	svc := NewAdminService(repo, testSecret, time.Hour)

	err := svc.DeleteUser(context.Background(), "missing")

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404 for unknown user, got %v", err)
	}
}

func TestListUsers_PropagatesRows(t *testing.T) {
	fixture := []auth.User{
		{ID: "u2", Email: "b@x.com", APICallsRemaining: 10},
		{ID: "u1", Email: "a@x.com", APICallsRemaining: 0},
	}
	repo := &mockAdminRepo{
		listUsersFn: func(ctx context.Context) ([]auth.User, error) {
			return fixture, nil
		},
	}
	svc := NewAdminService(repo, testSecret, time.Hour)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(users) != 2 || users[0].ID != "u2" || users[1].ID != "u1" {
		t.Fatalf("unexpected user list: %+v", users)
	}
}
