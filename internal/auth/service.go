// ABOUTME: Credential service: registration, login, and token revalidation
// ABOUTME: Validates input, hashes passwords, and mints session tokens

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tabstash/tabstash/internal/store"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8

// Credential errors
var (
	ErrFieldsRequired     = errors.New("name, username, password, and email are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Session is a freshly minted token together with its subject and expiry.
// ExpiresAt is surfaced to clients as a millisecond epoch for scheduling
// the next revalidation.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Service implements the credential and session lifecycle on top of a
// UserStore and a TokenIssuer.
type Service struct {
	users  store.UserStore
	issuer *TokenIssuer
	logger *slog.Logger
}

// NewService creates a credential service.
func NewService(users store.UserStore, issuer *TokenIssuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:  users,
		issuer: issuer,
		logger: logger.With("component", "auth"),
	}
}

// Issuer returns the token issuer backing this service.
func (s *Service) Issuer() *TokenIssuer {
	return s.issuer
}

// Register validates the input, hashes the password, and creates the user.
// Returns ErrFieldsRequired, ErrPasswordTooShort, or the store's duplicate
// errors (store.ErrUsernameExists, store.ErrEmailExists).
func (s *Service) Register(ctx context.Context, name, username, password, email string) (*store.User, error) {
	if name == "" || username == "" || password == "" || email == "" {
		return nil, ErrFieldsRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &store.User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		LastLogin:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("registered user", "user_id", user.ID, "username", username)
	return user, nil
}

// Authenticate looks up the user by username and verifies the password.
// Returns ErrInvalidCredentials when either step fails; the two failure
// modes are indistinguishable to the caller and cost the same time.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*store.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnVerification(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the user and mints a fresh session token. The user's
// last_login is updated best-effort; a failure there does not fail the login.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	token, expiresAt, err := s.issuer.Mint(user.ID)
	if err != nil {
		return nil, fmt.Errorf("minting token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", username)
	return &Session{Token: token, UserID: user.ID, ExpiresAt: expiresAt}, nil
}

// Revalidate re-proves the holder's password and mints a fresh token with a
// new 90-day expiration. Returns store.ErrNotFound when the user is gone and
// ErrInvalidCredentials when the password does not verify.
func (s *Service) Revalidate(ctx context.Context, userID, password string) (*Session, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnVerification(password)
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Mint(user.ID)
	if err != nil {
		return nil, fmt.Errorf("minting token: %w", err)
	}

	s.logger.Info("session revalidated", "user_id", user.ID)
	return &Session{Token: token, UserID: user.ID, ExpiresAt: expiresAt}, nil
}
