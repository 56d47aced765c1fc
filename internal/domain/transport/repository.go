package transport

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("transport not found")

type Repository interface {
	Save(ctx context.Context, t *Transport) error

	FindByID(ctx context.Context, transportID int64) (*Transport, error)

	FindAll(ctx context.Context, activeOnly bool) ([]*Transport, error)

	SetActiveStatus(ctx context.Context, transportID int64, isActive bool) error

	AssignDiary(ctx context.Context, transportID int64, diaryID int64) error
}
