package token

import (
	"testing"
	"time"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner([]byte("confirmation-test-key"), time.Hour)

	tok, err := s.Issue("ana@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}

	email, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email != "ana@example.com" {
		t.Errorf("expected ana@example.com, got %q", email)
	}
}

func TestSigner_Expired(t *testing.T) {
	s := NewSigner([]byte("confirmation-test-key"), time.Hour).(*jwtSigner)

	issued := time.Now()
	s.now = func() time.Time { return issued }
	tok, err := s.Issue("ana@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Two hours later the one-hour token is no longer valid.
	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := s.Verify(tok); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSigner_WrongKey(t *testing.T) {
	issuer := NewSigner([]byte("confirmation-test-key"), time.Hour)
	verifier := NewSigner([]byte("a-different-key-entirely"), time.Hour)

	tok, err := issuer.Issue("ana@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(tok); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSigner_Garbage(t *testing.T) {
	s := NewSigner([]byte("confirmation-test-key"), time.Hour)
	if _, err := s.Verify("not-a-token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
