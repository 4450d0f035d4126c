package model

import "time"

// Session is the locally persisted proof of a successful admin login.
// Validity is derived from LastActivityAt plus the configured inactivity
// timeout; nothing here carries an absolute expiry.
type Session struct {
	SessionID      string    `json:"session_id"`
	Identity       string    `json:"identity"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	DeviceInfo     string    `json:"device_info"`
	IPAddress      string    `json:"ip_address"`
}
