// Package service implements the application use cases on top of the
// store. Each mutating operation runs an explicit validation pass first
// and returns field-scoped errors with exact user-facing messages.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/todolistapp/todolist-server/internal/auth"
	"github.com/todolistapp/todolist-server/internal/domain"
	domainerrors "github.com/todolistapp/todolist-server/internal/errors"
	"github.com/todolistapp/todolist-server/internal/id"
	"github.com/todolistapp/todolist-server/internal/store"
	"github.com/todolistapp/todolist-server/internal/validation"
)

const maxUsernameLength = 30

// AuthService handles login, registration and identity lookups.
type AuthService struct {
	store  *store.Store
	tokens *auth.TokenService
	salt   string
	logger *slog.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(s *store.Store, tokens *auth.TokenService, salt string, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  s,
		tokens: tokens,
		salt:   salt,
		logger: logger.With("service", "auth"),
	}
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Username string
	Password string
}

// RegisterRequest carries the registration input.
type RegisterRequest struct {
	Username string
	Password string
}

// Login authenticates a user and returns a fresh token. A missing user
// and a wrong password produce the same message so callers cannot probe
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	var errs validation.FieldErrors
	if !validation.Required(req.Username) {
		errs.Add("username", "Username Cannot Be Empty")
	}
	if !validation.Required(req.Password) {
		errs.Add("password", "Password Cannot Be Empty")
	}
	if err := errs.Err(); err != nil {
		return "", err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return "", invalidCredentials()
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password, s.salt) {
		return "", invalidCredentials()
	}

	token, err := s.tokens.GenerateUserToken(user)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	// Best effort: a failed bookkeeping write must not fail the login.
	user.RecordLogin(time.Now())
	if err := s.store.UpdateUserLastLogin(ctx, user.ID, *user.LastLoginDate); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

func invalidCredentials() error {
	var errs validation.FieldErrors
	errs.Add("username", "Invalid Email Or Password")
	return errs.Err()
}

// Register creates a new user account and returns its ID.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var errs validation.FieldErrors
	switch {
	case !validation.Required(req.Username):
		errs.Add("username", "Email Cannot Be Empty")
	case !validation.MaxLength(req.Username, maxUsernameLength):
		errs.Add("username", "Maximum Length For Username is 30")
	default:
		_, err := s.store.GetUserByUsername(ctx, req.Username)
		switch {
		case err == nil:
			errs.Add("username", "Email Already Used")
		case !domainerrors.Is(err, store.ErrNotFound):
			return "", fmt.Errorf("check username: %w", err)
		}
	}
	switch {
	case !validation.Required(req.Password):
		errs.Add("password", "Password Cannot Be Empty")
	case !validation.MinLength(req.Password, 6):
		errs.Add("password", "Minimum Length For Password Is 6")
	}
	if err := errs.Err(); err != nil {
		return "", err
	}

	user := &domain.User{
		ID:           id.MustGenerate("user"),
		Username:     req.Username,
		PasswordHash: auth.HashPassword(req.Password, s.salt),
		CreateDate:   time.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same name.
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			var dup validation.FieldErrors
			dup.Add("username", "Email Already Used")
			return "", dup.Err()
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user.ID, nil
}

// CurrentUser returns the stored user for a resolved identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User Not Found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
