package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	CreatePayment(ctx context.Context, payment *Payment) (*Payment, error)

	GetPaymentByID(ctx context.Context, paymentID int64) (*Payment, error)

	ListPaymentsByFarmer(ctx context.Context, farmerID int64) ([]Payment, error)

	// ExistsForCycle reports whether a payment has already been booked for
	// the farmer and cycle window, so the close job stays idempotent.
	ExistsForCycle(ctx context.Context, farmerID int64, cycleStart, cycleEnd time.Time) (bool, error)

	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, paymentID int64, status PaymentStatus, paidAt *time.Time) error

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
