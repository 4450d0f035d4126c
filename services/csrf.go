package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"

	"mavryck/storage"
)

const csrfTokenKey = "auth:csrf_token"

// CSRFIssuer hands out the per-browser-session anti-forgery token. The
// token is generated lazily, persists across login/logout cycles, and is
// never derived from session state.
type CSRFIssuer struct {
	mu    sync.Mutex
	store storage.KV
}

func NewCSRFIssuer(store storage.KV) *CSRFIssuer {
	return &CSRFIssuer{store: store}
}

// Token returns the persisted token, generating and persisting a fresh
// 256-bit value on first use. Idempotent across calls.
func (i *CSRFIssuer) Token() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if token, err := i.store.Get(ctx, csrfTokenKey); err == nil && token != "" {
		return token, nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %v", err)
	}
	token := hex.EncodeToString(raw)

	if err := i.store.Set(ctx, csrfTokenKey, token); err != nil {
		return "", fmt.Errorf("failed to persist CSRF token: %v", err)
	}
	return token, nil
}

// Validate checks a candidate against the current token in constant
// time. A missing token never validates.
func (i *CSRFIssuer) Validate(candidate string) bool {
	if candidate == "" {
		return false
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	token, err := i.store.Get(ctx, csrfTokenKey)
	if err != nil || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1
}

// Clear drops the persisted token so the next Token call mints a new
// one.
func (i *CSRFIssuer) Clear() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	return i.store.Delete(ctx, csrfTokenKey)
}
