package services

import "errors"

var (
	ErrInvalidFormat      = errors.New("invalid email or password format")
	ErrRateLimited        = errors.New("too many failed login attempts")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidTwoFactor   = errors.New("invalid two-factor code")
)

// GenericLoginMessage is the single user-facing rejection for format and
// credential failures. Collapsing them avoids leaking which check failed.
const GenericLoginMessage = "Invalid email or password"
