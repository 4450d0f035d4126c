package services

import (
	"sync"
	"time"

	"mavryck/model"
)

// AttemptLedger is a time-windowed, in-memory log of login attempts per
// identity. It lives for the process lifetime only; lockout state resets
// on restart (known weakness, accepted for a single-operator deployment).
type AttemptLedger struct {
	mu          sync.Mutex
	attempts    []model.LoginAttempt
	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

func NewAttemptLedger(window time.Duration, maxAttempts int) *AttemptLedger {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &AttemptLedger{
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Record appends an attempt at the current time, then prunes entries
// older than the lockout window for all identities.
func (l *AttemptLedger) Record(identity string, succeeded bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.attempts = append(l.attempts, model.LoginAttempt{
		Identity:  identity,
		Timestamp: now,
		Succeeded: succeeded,
	})

	l.pruneLocked(now)
}

// IsRateLimited reports whether the identity has reached the failed
// attempt threshold within the trailing window.
func (l *AttemptLedger) IsRateLimited(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	failed := 0
	for _, attempt := range l.attempts {
		if attempt.Identity == identity && !attempt.Succeeded && attempt.Timestamp.After(cutoff) {
			failed++
		}
	}
	return failed >= l.maxAttempts
}

// Stats aggregates the identity's attempts within the trailing window.
func (l *AttemptLedger) Stats(identity string) model.LoginStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	var stats model.LoginStats
	var oldestFailure time.Time

	for _, attempt := range l.attempts {
		if attempt.Identity != identity || !attempt.Timestamp.After(cutoff) {
			continue
		}
		stats.TotalAttempts++
		if attempt.Succeeded {
			stats.SuccessfulAttempts++
		} else {
			stats.FailedAttempts++
			if oldestFailure.IsZero() || attempt.Timestamp.Before(oldestFailure) {
				oldestFailure = attempt.Timestamp
			}
		}
	}

	stats.IsLocked = stats.FailedAttempts >= l.maxAttempts
	if stats.IsLocked {
		// The lock clears once the oldest counted failure ages out.
		stats.RetryAfter = oldestFailure.Add(l.window).Sub(now)
	}
	return stats
}

func (l *AttemptLedger) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.attempts[:0]
	for _, attempt := range l.attempts {
		if attempt.Timestamp.After(cutoff) {
			kept = append(kept, attempt)
		}
	}
	l.attempts = kept
}
