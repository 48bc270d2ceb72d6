package token

import (
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := Issue(userID, RealmUser, secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := Verify(tok, RealmUser, secret)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != userID {
		t.Fatalf("subject mismatch: got %q want %q", subject, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := Issue("u1", RealmUser, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := Verify(tok, RealmUser, secret); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue("u2", RealmUser, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := Verify(tok, RealmUser, []byte("wrong-secret")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := Verify("not.a.jwt", RealmUser, []byte("k")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

// A token minted for one realm must be rejected by the other, even though
// both realms sign with the same secret.
func TestVerify_RealmSeparation(t *testing.T) {
	t.Parallel()

	secret := []byte("shared-secret")

	adminTok, err := Issue("admin-1", RealmAdmin, secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := Verify(adminTok, RealmUser, secret); err != ErrInvalidToken {
		t.Fatalf("admin token accepted by user realm: err=%v", err)
	}

	userTok, err := Issue("user-1", RealmUser, secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := Verify(userTok, RealmAdmin, secret); err != ErrInvalidToken {
		t.Fatalf("user token accepted by admin realm: err=%v", err)
	}

	// Same token stays valid in its own realm.
	if subject, err := Verify(adminTok, RealmAdmin, secret); err != nil || subject != "admin-1" {
		t.Fatalf("admin token rejected by its own realm: subject=%q err=%v", subject, err)
	}
}
