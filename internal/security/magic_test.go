package security_test

import (
	"testing"
	"time"

	"github.com/glancery/glancery/internal/security"
)

func TestMagicRoundTrip(t *testing.T) {
	tok, err := security.MakeMagic("secret", "u@example.com", "123456", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	c, err := security.ParseMagic("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Email != "u@example.com" || c.OTP != "123456" {
		t.Fatalf("claims mismatch: %#v", c)
	}
}

func TestMagicRejectsWrongSecretAndExpiry(t *testing.T) {
	tok, err := security.MakeMagic("secret", "u@example.com", "123456", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseMagic("other", tok); err == nil {
		t.Fatal("wrong secret must fail")
	}

	expired, err := security.MakeMagic("secret", "u@example.com", "123456", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseMagic("secret", expired); err == nil {
		t.Fatal("expired token must fail")
	}
}

func TestOTPShapeAndHash(t *testing.T) {
	otp, err := security.NewOTP()
	if err != nil {
		t.Fatal(err)
	}
	if len(otp) != 6 {
		t.Fatalf("otp = %q, want 6 digits", otp)
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			t.Fatalf("otp = %q, non-digit", otp)
		}
	}

	hash, err := security.HashOTP(otp)
	if err != nil {
		t.Fatal(err)
	}
	if !security.CheckOTP(hash, otp) {
		t.Fatal("hash must verify its own code")
	}
	if security.CheckOTP(hash, "000001") && otp != "000001" {
		t.Fatal("hash must reject other codes")
	}
}
