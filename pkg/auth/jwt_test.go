package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testIdentity() Identity {
	return Identity{
		MemberID: uuid.New(),
		FamilyID: uuid.New(),
		Role:     RoleAdmin,
	}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret-key-32-bytes-long!!!", time.Hour)
	id := testIdentity()

	token, err := m.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != id {
		t.Fatalf("expected identity %+v, got %+v", id, got)
	}
}

func TestTokenManager_VerifyFailures(t *testing.T) {
	m := NewTokenManager("test-secret-key-32-bytes-long!!!", time.Hour)

	t.Run("garbage input", func(t *testing.T) {
		if _, err := m.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-key-32-bytes!!!!!", time.Hour)
		token, err := other.Issue(testIdentity())
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenManager("test-secret-key-32-bytes-long!!!", -time.Minute)
		token, err := expired.Issue(testIdentity())
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := m.Issue(testIdentity())
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		tampered := token[:len(token)-2] + "xx"
		if _, err := m.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}
