package postgres

import (
	"context"
	"dairycollect/internal/domain/user"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db DBPool, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger.With("component", "UserRepository")}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if u == nil {
		return fmt.Errorf("%w: user cannot be nil", apperrors.ErrInvalidArgument)
	}

	if u.UserID == 0 {

		return r.createUser(ctx, u)
	} else {

		return r.updateUser(ctx, u)
	}
}

func (r *UserRepository) createUser(ctx context.Context, u *user.User) error {

	r.logger.InfoContext(ctx, "Attempting to insert new user", slog.String("role", string(u.Role)))

	query := `
        INSERT INTO users (phone, name, password_hash, role, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		u.Phone,
		u.Name,
		u.PasswordHash,
		u.Role,
		u.Active,
	).Scan(
		&u.UserID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {

		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert user due to unique constraint violation", slog.String("phone", u.Phone))
			return user.ErrDuplicatePhone
		}
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert user: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "User inserted successfully", slog.Int64("userID", u.UserID))
	return nil
}

func (r *UserRepository) updateUser(ctx context.Context, u *user.User) error {

	r.logger.InfoContext(ctx, "Attempting to update user")

	query := `
        UPDATE users
        SET phone = $1,
            name = $2,
            password_hash = $3,
            role = $4,
            active = $5,
            updated_at = NOW()
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		u.Phone,
		u.Name,
		u.PasswordHash,
		u.Role,
		u.Active,
		u.UserID,
	)

	if err != nil {

		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to update user due to unique constraint violation", slog.String("phone", u.Phone))
			return user.ErrDuplicatePhone
		}
		r.logger.ErrorContext(ctx, "Failed to update user", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update user: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, user likely not found")

		return user.ErrNotFound
	}

	r.logger.InfoContext(ctx, "User updated successfully")

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID int64) (*user.User, error) {

	r.logger.InfoContext(ctx, "Attempting to find user by ID")

	query := `
        SELECT id, phone, name, password_hash, role, active, created_at, updated_at
        FROM users
        WHERE id = $1`

	var u user.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&u.UserID,
		&u.Phone,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "User not found")
			return nil, user.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan user by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get user by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "User found successfully")
	return &u, nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {

	r.logger.InfoContext(ctx, "Attempting to find user by phone")

	query := `
        SELECT id, phone, name, password_hash, role, active, created_at, updated_at
        FROM users
        WHERE phone = $1`

	var u user.User
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&u.UserID,
		&u.Phone,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "User not found for the given phone")
			return nil, user.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan user by phone", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get user by phone: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "User found successfully by phone", slog.Int64("userID", u.UserID))
	return &u, nil
}

func (r *UserRepository) SetActiveStatus(ctx context.Context, userID int64, isActive bool) error {

	r.logger.InfoContext(ctx, "Attempting to set user active status", slog.Bool("active", isActive))

	query := `
        UPDATE users
        SET active = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, isActive, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update user active status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update user active status: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Active status update affected zero rows, user likely not found")
		return user.ErrNotFound
	}

	r.logger.InfoContext(ctx, "User active status updated successfully")
	return nil
}
