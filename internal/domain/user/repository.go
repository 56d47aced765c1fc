package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("user not found")

	ErrDuplicatePhone = errors.New("phone number already registered")
)

type Repository interface {
	Save(ctx context.Context, u *User) error

	FindByID(ctx context.Context, userID int64) (*User, error)

	FindByPhone(ctx context.Context, phone string) (*User, error)

	SetActiveStatus(ctx context.Context, userID int64, isActive bool) error
}
