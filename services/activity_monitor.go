package services

import (
	"log"
	"sync"
	"time"
)

// ActivityMonitor periodically re-checks session validity and forces a
// logout once the inactivity timeout has elapsed. A single goroutine
// drives the ticker, so checks never overlap.
type ActivityMonitor struct {
	auth      *AuthService
	interval  time.Duration
	onExpired func()

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewActivityMonitor builds a monitor. onExpired is invoked after a
// forced logout so the UI layer can surface a "session expired" notice;
// it may be nil.
func NewActivityMonitor(auth *AuthService, interval time.Duration, onExpired func()) *ActivityMonitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &ActivityMonitor{
		auth:      auth,
		interval:  interval,
		onExpired: onExpired,
		done:      make(chan struct{}),
	}
}

func (m *ActivityMonitor) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.check()
			case <-m.done:
				return
			}
		}
	}()
}

// Stop cancels the ticker and waits for the goroutine to exit.
func (m *ActivityMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
}

func (m *ActivityMonitor) check() {
	sessions := m.auth.Sessions()

	// Flagged-but-invalid means the session aged out rather than never
	// existing; that is the forced-logout case.
	if sessions.Flagged() && !sessions.IsValid() {
		log.Printf("Session expired after inactivity, forcing logout")
		m.auth.Logout()
		if m.onExpired != nil {
			m.onExpired()
		}
	}
}
