// ABOUTME: Tests for the bearer-token middleware using a stub user lookup
// ABOUTME: Covers missing/malformed headers, bad tokens, and stale-token rejection

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskvault/taskvault/internal/store"
)

// stubUserLookup backs the middleware with an in-memory username map.
type stubUserLookup struct {
	users map[string]*store.User
}

func (s *stubUserLookup) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func TestMiddleware_ValidToken(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), time.Hour)
	lookup := &stubUserLookup{users: map[string]*store.User{
		"alice": {ID: "u1", Username: "alice"},
	}}

	token, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var gotUser *store.User
	handler := Middleware(lookup, tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUser == nil || gotUser.ID != "u1" {
		t.Errorf("handler saw user %+v, want u1", gotUser)
	}
}

func TestMiddleware_Rejections(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), time.Hour)
	otherTokens := NewTokenService([]byte("other-secret"), time.Hour)
	expiredTokens := NewTokenService([]byte("test-secret"), time.Hour)
	expiredTokens.ttl = -time.Hour

	lookup := &stubUserLookup{users: map[string]*store.User{
		"alice": {ID: "u1", Username: "alice"},
	}}

	validToken, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	wrongSecretToken, err := otherTokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	expiredToken, err := expiredTokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	// Token for an account that no longer exists
	staleToken, err := tokens.Issue("ghost")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc123"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + wrongSecretToken},
		{name: "expired token", header: "Bearer " + expiredToken},
		{name: "deleted user", header: "Bearer " + staleToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Middleware(lookup, tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if called {
				t.Error("handler was called, want request rejected")
			}
		})
	}

	// Sanity check that the valid token still passes after the rejections
	handler := Middleware(lookup, tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want %d", rec.Code, http.StatusOK)
	}
}
