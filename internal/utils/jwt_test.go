package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWTSigner_RoundTrip(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	tok, err := s.Issue("1001")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	sub, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sub != "1001" {
		t.Fatalf("subject = %q, want 1001", sub)
	}
}

func TestJWTSigner_TokensDiffer(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	a, _ := s.Issue("1")
	b, _ := s.Issue("1")
	if a == b {
		t.Fatalf("expected distinct tokens for repeated issue")
	}
}

func TestJWTSigner_Rejects(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	tok, err := s.Issue("42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape %q", tok)
	}
	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	expired := NewJWTSigner("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Issue("42")

	cases := map[string]struct {
		signer *JWTSigner
		token  string
	}{
		"wrong secret":    {NewJWTSigner("other", time.Hour), tok},
		"mutated payload": {s, parts[0] + "." + flip(parts[1]) + "." + parts[2]},
		"mutated sig":     {s, parts[0] + "." + parts[1] + "." + flip(parts[2])},
		"expired":         {s, old},
		"garbage":         {s, "not-a-token"},
		"empty":           {s, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tc.signer.Verify(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
