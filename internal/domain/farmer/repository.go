package farmer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("farmer not found")

	ErrDuplicatePhone = errors.New("phone number already registered to another farmer")

	ErrUpdateConflict = errors.New("update conflict detected")
)

type FarmerRepository interface {
	Save(ctx context.Context, farmer *Farmer) error

	FindByID(ctx context.Context, farmerID int64) (*Farmer, error)

	FindByPhone(ctx context.Context, phone string) (*Farmer, error)

	FindAll(ctx context.Context, activeOnly bool) ([]*Farmer, error)

	FindByPOC(ctx context.Context, pocID int64) ([]*Farmer, error)

	SetActiveStatus(ctx context.Context, farmerID int64, isActive bool) error

	AssignPOC(ctx context.Context, farmerID int64, pocID int64) error
}
