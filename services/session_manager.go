package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"mavryck/model"
	"mavryck/storage"
	"mavryck/utils"
)

const (
	sessionKey       = "auth:session"
	authenticatedKey = "auth:authenticated"
	lastActivityKey  = "auth:last_activity"
)

const storeTimeout = 5 * time.Second

// SessionManager owns the persisted admin session. The authenticated
// flag and last-activity timestamp live under their own keys so validity
// checks avoid deserializing the full session record. All storage
// failures read as "no session" (fail closed).
type SessionManager struct {
	mu      sync.Mutex
	store   storage.KV
	timeout time.Duration
	now     func() time.Time
}

func NewSessionManager(store storage.KV, timeout time.Duration) *SessionManager {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &SessionManager{
		store:   store,
		timeout: timeout,
		now:     time.Now,
	}
}

// Create persists a fresh session for the identity, replacing any
// existing one.
func (m *SessionManager) Create(identity, userAgent, ipAddress string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	session := &model.Session{
		SessionID:      uuid.New().String(),
		Identity:       identity,
		CreatedAt:      now,
		LastActivityAt: now,
		DeviceInfo:     utils.DeviceLabel(userAgent),
		IPAddress:      ipAddress,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := m.store.Set(ctx, sessionKey, string(data)); err != nil {
		return nil, err
	}
	if err := m.store.Set(ctx, authenticatedKey, "true"); err != nil {
		return nil, err
	}
	if err := m.store.Set(ctx, lastActivityKey, now.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}

	return session, nil
}

// Touch updates the last-activity timestamp. No-op when no session
// exists.
func (m *SessionManager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if flag, err := m.store.Get(ctx, authenticatedKey); err != nil || flag != "true" {
		return
	}

	now := m.now()
	if err := m.store.Set(ctx, lastActivityKey, now.Format(time.RFC3339Nano)); err != nil {
		log.Printf("Warning: failed to persist session activity: %v", err)
		return
	}

	// Best effort on the full record; the fast-path key above is what
	// validity checks read.
	if raw, err := m.store.Get(ctx, sessionKey); err == nil {
		var session model.Session
		if err := json.Unmarshal([]byte(raw), &session); err == nil {
			session.LastActivityAt = now
			if data, err := json.Marshal(&session); err == nil {
				if err := m.store.Set(ctx, sessionKey, string(data)); err != nil {
					log.Printf("Warning: failed to persist session record: %v", err)
				}
			}
		}
	}
}

// IsValid reports whether an authenticated session exists and has seen
// activity within the inactivity timeout. A stale session is destroyed
// on read.
func (m *SessionManager) IsValid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	flag, err := m.store.Get(ctx, authenticatedKey)
	if err != nil || flag != "true" {
		return false
	}

	raw, err := m.store.Get(ctx, lastActivityKey)
	if err != nil {
		return false
	}

	lastActivity, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		// Unreadable activity state counts as no session.
		m.destroyLocked(ctx)
		return false
	}

	if m.now().Sub(lastActivity) > m.timeout {
		utils.SessionExpirations.Inc()
		m.destroyLocked(ctx)
		return false
	}
	return true
}

// Flagged reports the raw authenticated flag without the validity
// check. The activity monitor uses it to tell "expired" apart from
// "never logged in".
func (m *SessionManager) Flagged() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	flag, err := m.store.Get(ctx, authenticatedKey)
	return err == nil && flag == "true"
}

// Current returns the persisted session record, or nil when absent or
// unreadable.
func (m *SessionManager) Current() *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	raw, err := m.store.Get(ctx, sessionKey)
	if err != nil {
		return nil
	}

	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil
	}
	return &session
}

// Destroy removes all persisted session state.
func (m *SessionManager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	m.destroyLocked(ctx)
}

func (m *SessionManager) destroyLocked(ctx context.Context) {
	for _, key := range []string{sessionKey, authenticatedKey, lastActivityKey} {
		if err := m.store.Delete(ctx, key); err != nil {
			log.Printf("Warning: failed to remove %s: %v", key, err)
		}
	}
}
