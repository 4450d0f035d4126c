// Package remote talks to the hosted identity provider. The provider is
// advisory: local session state gates the admin UI, and every caller is
// expected to tolerate these operations failing.
package remote

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserNotFound means the provider rejected the credentials as
	// belonging to no known user.
	ErrUserNotFound = errors.New("remote: user not found")

	// ErrAlreadyRegistered means sign-up hit an existing account. Callers
	// treat this as non-fatal.
	ErrAlreadyRegistered = errors.New("remote: user already registered")

	// ErrUnavailable covers network failures and 5xx responses.
	ErrUnavailable = errors.New("remote: identity provider unavailable")

	// ErrNoSession means no remote session is currently established.
	ErrNoSession = errors.New("remote: no active session")
)

// Session is the provider-backed session returned by sign-in and
// refresh calls.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	ExpiresAt    time.Time
}

// Expired reports whether the access token is past its expiry.
func (s *Session) Expired() bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) error
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*Session, error)
	RefreshSession(ctx context.Context) (*Session, error)
}
