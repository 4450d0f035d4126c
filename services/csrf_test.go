package services

import (
	"testing"

	"mavryck/storage"
)

func TestCSRFTokenIsStable(t *testing.T) {
	issuer := NewCSRFIssuer(storage.NewMemoryKV())

	first, err := issuer.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("Token length = %d, want 64 hex chars (256 bits)", len(first))
	}

	for i := 0; i < 10; i++ {
		token, err := issuer.Token()
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}
		if token != first {
			t.Fatal("Token must be stable across calls absent a clear")
		}
	}
}

func TestCSRFValidate(t *testing.T) {
	issuer := NewCSRFIssuer(storage.NewMemoryKV())

	token, err := issuer.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	if !issuer.Validate(token) {
		t.Error("Current token should validate")
	}
	if issuer.Validate("deadbeef") {
		t.Error("Wrong token should not validate")
	}
	if issuer.Validate("") {
		t.Error("Empty candidate should not validate")
	}
}

func TestCSRFValidateWithoutToken(t *testing.T) {
	issuer := NewCSRFIssuer(storage.NewMemoryKV())

	if issuer.Validate("anything") {
		t.Error("Validation must fail before any token was issued")
	}
}

func TestCSRFClearMintsFreshTokens(t *testing.T) {
	issuer := NewCSRFIssuer(storage.NewMemoryKV())

	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		token, err := issuer.Token()
		if err != nil {
			t.Fatalf("Token failed on trial %d: %v", i, err)
		}
		if seen[token] {
			t.Fatalf("Token collision on trial %d", i)
		}
		seen[token] = true

		if err := issuer.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
	}
}
