package helper

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// emailRe mirrors the address shape the signup forms enforce: something
// before the @, something after it, and at least one dot-separated segment.
// "foo@bar" fails, "foo@bar.com" passes.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// NormalizeEmail lowers and trims for storage and lookups.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeName is the match key for publication names in the followed
// publishers cookie.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Hash8 is a short stable digest used to reference emails in logs and
// metrics without recording the address itself.
func Hash8(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
