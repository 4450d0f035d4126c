package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"admin@mavryckevents.com", true},
		{"first.last+tag@sub.example.co", true},
		{"admin@localhost", false},
		{"not-an-email", false},
		{"@example.com", false},
		{"admin@example.", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"strong", "SecurePass!23", true},
		{"symbol counts", "abcdefg$", true},
		{"too short", "ab!", false},
		{"long but no symbol", "abcdefgh1234", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain text  ", "plain text"},
		{`<script>alert("x")</script>`, "scriptalert(x)/script"},
		{"O'Brien", "OBrien"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeInput(tt.in); got != tt.want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Admin@MavryckEvents.COM "); got != "admin@mavryckevents.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
