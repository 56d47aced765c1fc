package postgres

import (
	"context"
	"dairycollect/internal/domain/payment"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

type PaymentRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ payment.Repository = (*PaymentRepository)(nil)

func NewPaymentRepository(db DBPool, logger *slog.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger.With("component", "PaymentRepository")}
}

func (r *PaymentRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *PaymentRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {

		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *PaymentRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)

		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	query := `
        INSERT INTO payments (farmer_id, reference, cycle_start, cycle_end, milk_liters, amount, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, farmer_id, reference, cycle_start, cycle_end, milk_liters, amount, status, paid_at, created_at, updated_at`

	var created payment.Payment
	err := r.db.QueryRow(ctx, query,
		p.FarmerID, p.Reference, p.CycleStart, p.CycleEnd, p.MilkLiters, p.Amount, p.Status,
	).Scan(
		&created.ID, &created.FarmerID, &created.Reference, &created.CycleStart, &created.CycleEnd,
		&created.MilkLiters, &created.Amount, &created.Status, &created.PaidAt,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {

		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Payment already booked for cycle", "farmer_id", p.FarmerID, "cycle_start", p.CycleStart)
			return nil, translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert payment", "farmer_id", p.FarmerID, "error", err)
		return nil, fmt.Errorf("%w: failed to insert payment: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Payment created in DB", "payment_id", created.ID, "farmer_id", created.FarmerID, "amount", created.Amount)
	return &created, nil
}

func (r *PaymentRepository) GetPaymentByID(ctx context.Context, paymentID int64) (*payment.Payment, error) {
	query := `
        SELECT id, farmer_id, reference, cycle_start, cycle_end, milk_liters, amount, status, paid_at, created_at, updated_at
        FROM payments
        WHERE id = $1`

	var p payment.Payment
	err := r.db.QueryRow(ctx, query, paymentID).Scan(
		&p.ID, &p.FarmerID, &p.Reference, &p.CycleStart, &p.CycleEnd,
		&p.MilkLiters, &p.Amount, &p.Status, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Payment not found", "payment_id", paymentID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get payment by ID", "payment_id", paymentID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &p, nil
}

func (r *PaymentRepository) ListPaymentsByFarmer(ctx context.Context, farmerID int64) ([]payment.Payment, error) {
	query := `
        SELECT id, farmer_id, reference, cycle_start, cycle_end, milk_liters, amount, status, paid_at, created_at, updated_at
        FROM payments
        WHERE farmer_id = $1
        ORDER BY cycle_start DESC`

	rows, err := r.db.Query(ctx, query, farmerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query payments by farmer", "farmer_id", farmerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments := make([]payment.Payment, 0)
	for rows.Next() {
		var p payment.Payment
		err := rows.Scan(
			&p.ID, &p.FarmerID, &p.Reference, &p.CycleStart, &p.CycleEnd,
			&p.MilkLiters, &p.Amount, &p.Status, &p.PaidAt,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan payment row", "farmer_id", farmerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating payment rows", "farmer_id", farmerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return payments, nil
}

func (r *PaymentRepository) ExistsForCycle(ctx context.Context, farmerID int64, cycleStart, cycleEnd time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM payments WHERE farmer_id = $1 AND cycle_start = $2 AND cycle_end = $3`
	err := r.db.QueryRow(ctx, query, farmerID, cycleStart, cycleEnd).Scan(&count)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count payments for cycle", "farmer_id", farmerID, "error", err)
		return false, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return count > 0, nil
}

func (r *PaymentRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, paymentID int64, status payment.PaymentStatus, paidAt *time.Time) error {
	sql := `UPDATE payments SET status = $1, paid_at = $2, updated_at = NOW() WHERE id = $3`
	cmdTag, err := tx.Exec(ctx, sql, status, paidAt, paymentID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update payment status", "payment_id", paymentID, "status", status, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() != 1 {
		r.logger.ErrorContext(ctx, "Payment status update affected zero rows", "payment_id", paymentID, "status", status)

		return fmt.Errorf("%w: payment status update affected zero rows", apperrors.ErrDatabase)
	}
	r.logger.InfoContext(ctx, "Payment status updated in DB", "payment_id", paymentID, "new_status", status)
	return nil
}
