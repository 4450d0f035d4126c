package services

import (
	"testing"
	"time"
)

func TestActivityMonitorForcesLogoutOnExpiry(t *testing.T) {
	f := newAuthFixture(t, nil)

	if _, err := login(f, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	expired := make(chan struct{}, 1)
	monitor := NewActivityMonitor(f.auth, 10*time.Millisecond, func() {
		select {
		case expired <- struct{}{}:
		default:
		}
	})

	*f.clock = f.clock.Add(31 * time.Minute)

	monitor.Start()
	defer monitor.Stop()

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a session-expired notification")
	}

	if f.sessions.Flagged() {
		t.Error("Forced logout should clear the authenticated flag")
	}
}

func TestActivityMonitorLeavesValidSessionAlone(t *testing.T) {
	f := newAuthFixture(t, nil)

	if _, err := login(f, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	notified := false
	monitor := NewActivityMonitor(f.auth, 10*time.Millisecond, func() {
		notified = true
	})
	monitor.Start()

	time.Sleep(50 * time.Millisecond)
	monitor.Stop()

	if notified {
		t.Error("A valid session must not trigger the expiry notice")
	}
	if !f.auth.IsAuthenticated() {
		t.Error("Session should still be valid")
	}
}

func TestActivityMonitorStopIsIdempotent(t *testing.T) {
	f := newAuthFixture(t, nil)
	monitor := NewActivityMonitor(f.auth, 10*time.Millisecond, nil)

	monitor.Start()
	monitor.Stop()
	monitor.Stop()
}
