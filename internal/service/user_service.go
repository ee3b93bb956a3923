package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/service/auth"
	"github.com/phrazzld/smarttask/internal/store"
)

// PasswordHashVerifier hashes new passwords and checks submitted ones.
type PasswordHashVerifier interface {
	auth.PasswordHasher
	auth.PasswordVerifier
}

// UserService provides account operations.
type UserService interface {
	// Register creates an account. Returns ErrUsernameTaken if the name is in use.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Authenticate checks credentials. Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users     store.UserStore
	passwords PasswordHashVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users store.UserStore, passwords PasswordHashVerifier, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:     users,
		passwords: passwords,
		logger:    logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.
func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, NewServiceError("user", "register", "failed to hash password", err)
	}

	user, err := domain.NewUser(username, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			s.logger.Debug("attempted to register existing username", "username", user.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to save user", "error", err, "username", user.Username)
		return nil, NewServiceError("user", "register", "failed to save user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate implements UserService.
func (s *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("login for unknown username", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, NewServiceError("user", "authenticate", "failed to load user", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		return nil, NewServiceError("user", "get_user", "failed to retrieve user", err)
	}
	return user, nil
}
