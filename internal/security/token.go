package security

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// NewSessionCode returns the opaque icode issued after OTP verification.
func NewSessionCode() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewShortCode returns a short url-safe code for glances and drafts.
func NewShortCode() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return strings.TrimRight(base64.RawURLEncoding.EncodeToString(b), "=")
}

// NewOTP returns a 6-digit one-time passcode, zero-padded.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	s := n.String()
	for len(s) < 6 {
		s = "0" + s
	}
	return s, nil
}

// HashOTP protects codes at rest; a leaked session store must not reveal
// valid passcodes.
func HashOTP(otp string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	return string(b), err
}

func CheckOTP(hash, otp string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(otp)) == nil
}
