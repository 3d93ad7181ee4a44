// ABOUTME: Unit tests for JWT token issuance and verification
// ABOUTME: Tests valid tokens, invalid tokens, and expired tokens

package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenService_ValidToken(t *testing.T) {
	secret := []byte("test-secret-key-for-jwt-signing")
	tokens := NewTokenService(secret, time.Hour)

	username := "alice"
	token, err := tokens.Issue(username)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	got, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if got != username {
		t.Errorf("Verify() = %q, want %q", got, username)
	}
}

func TestTokenService_InvalidToken(t *testing.T) {
	secret := []byte("test-secret-key-for-jwt-signing")
	tokens := NewTokenService(secret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt-token",
		},
		{
			name:  "malformed JWT",
			token: "header.payload.signature",
		},
		{
			name: "wrong secret",
			token: func() string {
				// Issued with a different secret
				other := NewTokenService([]byte("different-secret"), time.Hour)
				token, _ := other.Issue("alice")
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			if err == nil {
				t.Error("Verify() should have returned an error")
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret-key-for-jwt-signing")

	// Issue a token that expired an hour ago
	expired := NewTokenService(secret, time.Hour)
	expired.ttl = -time.Hour
	token, err := expired.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tokens := NewTokenService(secret, time.Hour)
	_, err = tokens.Verify(token)
	if err == nil {
		t.Error("Verify() should have returned an error for expired token")
	}

	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	tokens := NewTokenService([]byte("secret"), 0)
	if tokens.ttl != DefaultTokenTTL {
		t.Errorf("ttl = %v, want %v", tokens.ttl, DefaultTokenTTL)
	}
}

func TestTokenService_DifferentUsers(t *testing.T) {
	secret := []byte("test-secret-key-for-jwt-signing")
	tokens := NewTokenService(secret, time.Hour)

	usernames := []string{"alice", "bob", "carol"}

	for _, username := range usernames {
		token, err := tokens.Issue(username)
		if err != nil {
			t.Fatalf("Issue(%q) error = %v", username, err)
		}

		got, err := tokens.Verify(token)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}

		if got != username {
			t.Errorf("Verify() = %q, want %q", got, username)
		}
	}
}
