package credentials

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != 42 {
		t.Fatalf("subject = %d, want 42", claims.Subject)
	}
	if remaining := time.Until(claims.ExpiresAt); remaining > 30*time.Minute || remaining < 29*time.Minute {
		t.Fatalf("expiry %v not ~30m out", remaining)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.IssueAt(42, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}

	if _, err := issuer.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)
	other := NewTokenIssuer("other-secret", 30*time.Minute)

	token, err := other.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)
	if _, err := issuer.Validate("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
