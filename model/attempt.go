package model

import "time"

// LoginAttempt is one entry in the in-memory attempt ledger.
type LoginAttempt struct {
	Identity  string    `json:"identity"`
	Timestamp time.Time `json:"timestamp"`
	Succeeded bool      `json:"succeeded"`
}

// LoginStats aggregates attempts for an identity over the trailing
// lockout window.
type LoginStats struct {
	TotalAttempts      int           `json:"total_attempts"`
	FailedAttempts     int           `json:"failed_attempts"`
	SuccessfulAttempts int           `json:"successful_attempts"`
	IsLocked           bool          `json:"is_locked"`
	RetryAfter         time.Duration `json:"retry_after,omitempty"`
}
