// ABOUTME: Tests for bcrypt password hashing and verification
// ABOUTME: Covers roundtrip, mismatch, and hash uniqueness

package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("CheckPassword should accept the original password")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("CheckPassword should reject a different password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should differ (per-hash salt)")
	}
}

func TestCheckPassword_BadHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Error("CheckPassword should reject a malformed hash")
	}
}
