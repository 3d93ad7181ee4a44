// ABOUTME: Registration and login orchestration over the user store
// ABOUTME: Hashes credentials with bcrypt and issues JWTs on success

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/taskvault/taskvault/internal/store"
)

// ErrInvalidCredentials is returned on login when the username is unknown or
// the password doesn't match. The two cases are deliberately indistinguishable
// to avoid username enumeration.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUsernameTaken is returned on registration when the username already exists.
var ErrUsernameTaken = store.ErrUsernameTaken

// ErrInvalidInput is returned on registration when the username or password
// fails validation before any storage work happens.
var ErrInvalidInput = errors.New("invalid input")

// Username validation regex: alphanumeric + underscores, 3-32 characters
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{2,31}$`)

// Service handles registration and login.
type Service struct {
	users  store.UserStore
	tokens *TokenService
	logger *slog.Logger
}

// NewService creates an auth service backed by the given user store and token service.
func NewService(users store.UserStore, tokens *TokenService) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: slog.Default().With("component", "auth"),
	}
}

// validateUsername checks if username meets requirements.
// Returns an error message or empty string if valid.
func validateUsername(username string) string {
	if len(username) < 3 {
		return "username must be at least 3 characters"
	}
	if len(username) > 32 {
		return "username must be at most 32 characters"
	}
	if !usernameRegex.MatchString(username) {
		return "username must start with a letter and contain only letters, numbers, and underscores"
	}
	return ""
}

// Register creates a new account and issues a token for it.
// Returns ErrUsernameTaken if the username already exists; the existing
// account is left untouched. Only the bcrypt hash is ever stored.
func (s *Service) Register(ctx context.Context, username, password string) (token string, err error) {
	if errMsg := validateUsername(username); errMsg != "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, errMsg)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &store.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("creating user: %w", err)
	}

	token, err = s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user registered", "username", username)
	return token, nil
}

// Login authenticates a username/password pair and issues a token.
// A bcrypt comparison runs whether or not the username exists, keeping
// response timing roughly constant for both failure cases.
func (s *Service) Login(ctx context.Context, username, password string) (token string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnPasswordCheck(password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err = s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", "username", username)
	return token, nil
}
