package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
	"github.com/mvidal/agenda/internal/pkg/auth"
)

// AuthService defines the interface for account operations
type AuthService interface {
	// Register creates a new account. The username must be free and the
	// role one of the known values.
	Register(ctx context.Context, username, password string, role models.Role, fullName string) (*models.User, error)

	// Authenticate returns the account matching the credentials, or nil
	// when the username is unknown, the password wrong, or the stored hash
	// malformed. Hash problems never surface as errors.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)

	// GetUser retrieves an account by id, nil when absent
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// ListByRole retrieves all accounts with the given role
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo UserRepository
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo UserRepository, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a new account with a bcrypt password hash
func (s *authServiceImpl) Register(ctx context.Context, username, password string, role models.Role, fullName string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if fullName != "" {
		user.FullName = &fullName
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("Account created")
	return user, nil
}

// Authenticate verifies credentials and returns the matching account
func (s *authServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}

	return user, nil
}

// GetUser retrieves an account by id, nil when absent
func (s *authServiceImpl) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}
	return user, nil
}

// ListByRole retrieves all accounts with the given role
func (s *authServiceImpl) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, role)
	}

	users, err := s.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return users, nil
}
