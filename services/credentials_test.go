package services

import "testing"

func TestAdminCredentialVerify(t *testing.T) {
	cred, err := NewAdminCredential("Admin@MavryckEvents.com", "SecurePass!23", "")
	if err != nil {
		t.Fatalf("NewAdminCredential failed: %v", err)
	}

	if cred.Email() != "admin@mavryckevents.com" {
		t.Errorf("Email() = %q, want normalized lower-case", cred.Email())
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"correct", "admin@mavryckevents.com", "SecurePass!23", true},
		{"wrong password", "admin@mavryckevents.com", "WrongPass!23", false},
		{"wrong email", "other@mavryckevents.com", "SecurePass!23", false},
		{"case-sensitive password", "admin@mavryckevents.com", "securepass!23", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cred.Verify(tt.email, tt.password); got != tt.want {
				t.Errorf("Verify(%q, ...) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestAdminCredentialHashedSecret(t *testing.T) {
	salt := []byte("0123456789abcdef")
	hash := HashPassword("SecurePass!23", salt)

	cred, err := NewAdminCredential("admin@mavryckevents.com", "", hash)
	if err != nil {
		t.Fatalf("NewAdminCredential failed: %v", err)
	}

	if !cred.Verify("admin@mavryckevents.com", "SecurePass!23") {
		t.Error("Correct password should verify against the argon2id hash")
	}
	if cred.Verify("admin@mavryckevents.com", "WrongPass!23") {
		t.Error("Wrong password should not verify")
	}
}

func TestAdminCredentialComparisonCounter(t *testing.T) {
	cred, err := NewAdminCredential("admin@mavryckevents.com", "SecurePass!23", "")
	if err != nil {
		t.Fatalf("NewAdminCredential failed: %v", err)
	}

	if cred.Comparisons() != 0 {
		t.Error("Counter should start at zero")
	}
	cred.Verify("admin@mavryckevents.com", "nope")
	cred.Verify("admin@mavryckevents.com", "SecurePass!23")
	if cred.Comparisons() != 2 {
		t.Errorf("Comparisons() = %d, want 2", cred.Comparisons())
	}
}

func TestAdminCredentialConfigValidation(t *testing.T) {
	if _, err := NewAdminCredential("", "secret!x", ""); err == nil {
		t.Error("Missing email should be rejected")
	}
	if _, err := NewAdminCredential("admin@mavryckevents.com", "", ""); err == nil {
		t.Error("Missing password and hash should be rejected")
	}
	if _, err := NewAdminCredential("admin@mavryckevents.com", "", "nodollarsign"); err == nil {
		t.Error("Malformed hash should be rejected")
	}
}
