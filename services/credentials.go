package services

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"sync/atomic"

	"golang.org/x/crypto/argon2"

	"mavryck/utils"
)

const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonKeyLength   = 32
)

// AdminCredential is the single static principal the back-office
// authenticates against. The email is case-normalized at construction;
// the secret is either plaintext or an argon2id "salt$hash" string and
// is never exposed or logged.
type AdminCredential struct {
	email  string
	secret string
	hashed bool

	comparisons atomic.Int64
}

// NewAdminCredential builds the credential from configuration. When
// passwordHash is non-empty it wins over the plaintext password.
func NewAdminCredential(email, password, passwordHash string) (*AdminCredential, error) {
	normalized := utils.NormalizeEmail(email)
	if normalized == "" {
		return nil, errors.New("admin email is required")
	}

	if passwordHash != "" {
		if !strings.Contains(passwordHash, "$") {
			return nil, errors.New("admin password hash is malformed")
		}
		return &AdminCredential{email: normalized, secret: passwordHash, hashed: true}, nil
	}

	if password == "" {
		return nil, errors.New("admin password is required")
	}
	return &AdminCredential{email: normalized, secret: password}, nil
}

// Email returns the normalized admin email, the identity key used for
// rate limiting and session records.
func (c *AdminCredential) Email() string {
	return c.email
}

// Verify compares a normalized email and raw password against the
// stored credential in constant time.
func (c *AdminCredential) Verify(email, password string) bool {
	c.comparisons.Add(1)

	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(c.email))

	var passwordMatch int
	if c.hashed {
		passwordMatch = c.verifyHash(password)
	} else {
		passwordMatch = subtle.ConstantTimeCompare([]byte(password), []byte(c.secret))
	}

	return emailMatch&passwordMatch == 1
}

// Comparisons reports how many times Verify ran. Tests use it to prove
// that rate-limited and malformed logins never reach the comparison.
func (c *AdminCredential) Comparisons() int64 {
	return c.comparisons.Load()
}

func (c *AdminCredential) verifyHash(password string) int {
	parts := strings.SplitN(c.secret, "$", 2)
	if len(parts) != 2 {
		return 0
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return 0
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return 0
	}

	derived := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)
	return subtle.ConstantTimeCompare(derived, expected)
}

// HashPassword produces the argon2id "salt$hash" encoding accepted by
// ADMIN_PASSWORD_HASH.
func HashPassword(password string, salt []byte) string {
	hash := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)
	return base64.RawStdEncoding.EncodeToString(salt) + "$" + base64.RawStdEncoding.EncodeToString(hash)
}
