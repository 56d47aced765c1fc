package user

import (
	"context"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type UserService interface {
	Register(ctx context.Context, phone, name, password string, role Role) (*User, error)

	// Authenticate checks phone/password and returns the user on success.
	// Inactive accounts and bad credentials both map to ErrInvalidCredentials
	// so callers cannot probe which phones exist.
	Authenticate(ctx context.Context, phone, password string) (*User, error)

	GetUser(ctx context.Context, userID int64) (*User, error)

	DeactivateUser(ctx context.Context, userID int64) error
}

var _ UserService = (*userService)(nil)

type userService struct {
	repo   Repository
	logger *slog.Logger
}

func NewUserService(repo Repository, logger *slog.Logger) UserService {
	if repo == nil {
		panic("user repository cannot be nil")
	}
	return &userService{repo: repo, logger: logger.With(slog.String("component", "userService"))}
}

func (s *userService) Register(ctx context.Context, phone, name, password string, role Role) (*User, error) {
	s.logger.InfoContext(ctx, "Attempting to register user account")

	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" {
		return nil, apperrors.NewValidationError("phone", "cannot be empty")
	}
	if name == "" {
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password", "must be at least 8 characters")
	}
	if !ValidRole(role) {
		return nil, apperrors.NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}

	if existing, err := s.repo.FindByPhone(ctx, phone); err == nil && existing != nil {
		s.logger.WarnContext(ctx, "Registration rejected: phone already registered")
		return nil, ErrDuplicatePhone
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.ErrorContext(ctx, "Repository error checking phone uniqueness", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}

	u, err := NewUser(phone, name, password, role)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to hash password", apperrors.ErrInternalServer)
	}

	if err := s.repo.Save(ctx, u); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save user", slog.Any("error", err))
		if errors.Is(err, ErrDuplicatePhone) {
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully registered user", slog.Int64("userID", u.UserID), slog.String("role", string(u.Role)))
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, phone, password string) (*User, error) {
	s.logger.InfoContext(ctx, "Authenticating user")

	u, err := s.repo.FindByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Authentication failed: unknown phone")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "Repository error during authentication", slog.Any("error", err))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !u.Active || !u.CheckPassword(password) {
		s.logger.WarnContext(ctx, "Authentication failed: bad credentials or inactive account")
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "Authentication succeeded", slog.Int64("userID", u.UserID))
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return u, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID int64) error {
	s.logger.InfoContext(ctx, "Attempting to deactivate user", slog.Int64("userID", userID))

	if err := s.repo.SetActiveStatus(ctx, userID, false); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deactivating user", slog.Any("error", err))
		return fmt.Errorf("failed to deactivate user %d: %w", userID, err)
	}
	return nil
}
