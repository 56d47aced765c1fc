package postgres

import (
	"context"
	"dairycollect/internal/domain/loan"
	"dairycollect/internal/infrastructure/monitoring"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var _ loan.Repository = (*LoanRepository)(nil)

var errMsgFormat = "%w: %w"

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) CreateLoan(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error) {
	query := `
        INSERT INTO loans (farmer_id, loan_amount, purpose, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, farmer_id, loan_amount, purpose, status, decided_at, created_at, updated_at`

	var created loan.Loan
	err := r.db.QueryRow(ctx, query,
		newLoan.FarmerID, newLoan.LoanAmount, newLoan.Purpose, newLoan.Status,
	).Scan(
		&created.ID, &created.FarmerID, &created.LoanAmount, &created.Purpose,
		&created.Status, &created.DecidedAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "farmer_id", newLoan.FarmerID, "error", err)
		return nil, fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", created.ID, "farmer_id", created.FarmerID)
	return &created, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := `
        SELECT id, farmer_id, loan_amount, purpose, status, decided_at, created_at, updated_at
        FROM loans
        WHERE id = $1`
	status := "success"
	startTime := time.Now()

	var l loan.Loan
	err := r.db.QueryRow(ctx, query, loanID).Scan(
		&l.ID, &l.FarmerID, &l.LoanAmount, &l.Purpose,
		&l.Status, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("GetLoanByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &l, nil
}

func (r *LoanRepository) ListLoans(ctx context.Context, status *loan.LoanStatus) ([]loan.Loan, error) {
	baseQuery := `
        SELECT id, farmer_id, loan_amount, purpose, status, decided_at, created_at, updated_at
        FROM loans`
	args := []any{}
	query := baseQuery
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]loan.Loan, 0)
	for rows.Next() {
		var l loan.Loan
		err := rows.Scan(
			&l.ID, &l.FarmerID, &l.LoanAmount, &l.Purpose,
			&l.Status, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return loans, nil
}

func (r *LoanRepository) ListLoansByFarmer(ctx context.Context, farmerID int64) ([]loan.Loan, error) {
	query := `
        SELECT id, farmer_id, loan_amount, purpose, status, decided_at, created_at, updated_at
        FROM loans
        WHERE farmer_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, farmerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans by farmer", "farmer_id", farmerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]loan.Loan, 0)
	for rows.Next() {
		var l loan.Loan
		err := rows.Scan(
			&l.ID, &l.FarmerID, &l.LoanAmount, &l.Purpose,
			&l.Status, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan farmer loan row", "farmer_id", farmerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating farmer loan rows", "farmer_id", farmerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return loans, nil
}

func (r *LoanRepository) UpdateLoanStatus(ctx context.Context, l *loan.Loan) error {
	sql := `UPDATE loans SET status = $1, decided_at = $2, updated_at = NOW() WHERE id = $3`
	cmdTag, err := r.db.Exec(ctx, sql, l.Status, l.DecidedAt, l.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan status", "loan_id", l.ID, "status", l.Status, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() != 1 {
		r.logger.WarnContext(ctx, "Loan status update affected zero rows", "loan_id", l.ID, "status", l.Status)
		return apperrors.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Loan status updated in DB", "loan_id", l.ID, "new_status", l.Status)
	return nil
}

func (r *LoanRepository) OutstandingDebt(ctx context.Context, farmerID int64) (float64, error) {
	var totalOutstanding float64

	query := `
        SELECT COALESCE(SUM(loan_amount), 0.00)
        FROM loans
        WHERE farmer_id = $1 AND status = 'APPROVED'`

	err := r.db.QueryRow(ctx, query, farmerID).Scan(&totalOutstanding)
	if err != nil {

		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.ErrorContext(ctx, "Failed to calculate outstanding debt", "farmer_id", farmerID, "error", err)
			return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
	}

	if totalOutstanding < 0 {
		r.logger.WarnContext(ctx, "Calculated outstanding debt is negative, returning 0", "farmer_id", farmerID, "calculated_value", totalOutstanding)
		return 0, nil
	}

	return totalOutstanding, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {

		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
