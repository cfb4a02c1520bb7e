package auth

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 60)

	token, err := m.Generate(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret", 60)
	other := NewTokenManager("another-secret", 60)

	token, err := m.Generate(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	// Отрицательный TTL: токен просрочен сразу после выпуска
	m := NewTokenManager("test-secret", -1)

	token, err := m.Generate(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", 60)

	if _, err := m.Parse("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !CheckPassword(hash, "secret123") {
		t.Fatalf("expected password to match its hash")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected wrong password to be rejected")
	}
}
