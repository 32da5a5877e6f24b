// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/digistore/digistore/internal/auth"
	"github.com/digistore/digistore/internal/model"
	"github.com/digistore/digistore/internal/repository"
)

// Credential verification errors. ErrUnknownUser and ErrInvalidPassword are
// internal distinctions for logging only; handlers must collapse them into a
// single uniform message to avoid account enumeration.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrUnknownUser        = errors.New("no user with this email")
	ErrInvalidPassword    = errors.New("password does not match")
	ErrEmailExists        = errors.New("email already registered")
)

// UserStore is the storage collaborator for account records.
// Implementations signal conflicts and misses with the repository sentinels.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService verifies credentials and registers accounts.
// Read paths are side-effect free.
type AuthService struct {
	users  UserStore
	logger *slog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Signup creates a new non-admin account and returns its Identity.
// The password hash never leaves this package.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return model.IdentityOf(user), nil
}

// Verify checks an email/password pair against the user store and returns the
// authenticated Identity. The email is trimmed the same way Signup trims it
// before storing; the comparison is otherwise exact. bcrypt for the password.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*model.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	return model.IdentityOf(user), nil
}
