package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", 720*time.Hour)
	tok, exp, err := m.Issue("A1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if until := time.Until(exp); until < 719*time.Hour {
		t.Fatalf("expiry too close: %v", until)
	}

	got, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got != "A1" {
		t.Fatalf("account id mismatch: got %q want %q", got, "A1")
	}
}

func TestParse_ExpiredAfterThirtyDays(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", 720*time.Hour)
	tok, _, err := m.Issue("A1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Simulated clock just past the 30-day expiry.
	later := m.WithClock(func() time.Time { return time.Now().Add(720*time.Hour + time.Minute) })
	_, err = later.Parse(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("right-secret", time.Hour)
	tok, _, err := m.Issue("A1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := NewJWTManager("wrong-secret", time.Hour)
	if _, err := other.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong signature, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("k", time.Hour)
	if _, err := m.Parse("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
