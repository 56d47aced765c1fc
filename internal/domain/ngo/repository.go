package ngo

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("NGO not found")

type Repository interface {
	Save(ctx context.Context, n *NGO) error

	FindByID(ctx context.Context, ngoID int64) (*NGO, error)

	FindAll(ctx context.Context, activeOnly bool) ([]*NGO, error)

	SetActiveStatus(ctx context.Context, ngoID int64, isActive bool) error

	// BuildActivityReport aggregates farmers, accepted liters and booked
	// payments for the region over [from, to].
	BuildActivityReport(ctx context.Context, region string, from, to time.Time) (*ActivityReport, error)
}
