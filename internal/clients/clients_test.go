package clients

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifySecret(t *testing.T) {
	hashed, err := HashSecret("a-long-enough-client-secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	if !VerifySecret(hashed, "a-long-enough-client-secret") {
		t.Error("expected secret to verify")
	}
	if VerifySecret(hashed, "a-long-enough-client-secreT") {
		t.Error("expected wrong secret to fail")
	}
}

func TestHashSecretTooShort(t *testing.T) {
	if _, err := HashSecret("short", bcrypt.MinCost); err == nil {
		t.Error("expected error for short secret")
	}
}
