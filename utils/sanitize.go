package utils

import "strings"

// Characters stripped from login inputs before they can reach logs or
// rendered markup.
var inputReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	`"`, "",
	"'", "",
)

// SanitizeInput trims surrounding whitespace and strips angle brackets
// and quote characters.
func SanitizeInput(s string) string {
	return inputReplacer.Replace(strings.TrimSpace(s))
}

// NormalizeEmail sanitizes and lower-cases an email address so it can be
// used as a credential-matching and rate-limiting key.
func NormalizeEmail(email string) string {
	return strings.ToLower(SanitizeInput(email))
}
