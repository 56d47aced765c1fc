package postgres

import (
	"context"
	"dairycollect/internal/domain/milk"
	"dairycollect/internal/infrastructure/monitoring"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

type MilkRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ milk.Repository = (*MilkRepository)(nil)

func NewMilkRepository(db DBPool, logger *slog.Logger) *MilkRepository {
	return &MilkRepository{db: db, logger: logger.With("component", "MilkRepository")}
}

func (r *MilkRepository) CreateSubmission(ctx context.Context, s *milk.Submission) (*milk.Submission, error) {
	query := `
        INSERT INTO milk_submissions (farmer_id, poc_id, amount_liters, status, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, farmer_id, poc_id, amount_liters, status, notes, created_at, updated_at`

	var created milk.Submission
	err := r.db.QueryRow(ctx, query,
		s.FarmerID, s.POCID, s.AmountLiters, s.Status, s.Notes,
	).Scan(
		&created.ID, &created.FarmerID, &created.POCID, &created.AmountLiters,
		&created.Status, &created.Notes, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert milk submission", "farmer_id", s.FarmerID, "error", err)
		return nil, fmt.Errorf("%w: failed to insert milk submission: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Milk submission created in DB", "submission_id", created.ID, "farmer_id", created.FarmerID)
	return &created, nil
}

func (r *MilkRepository) GetSubmissionByID(ctx context.Context, submissionID int64) (*milk.Submission, error) {
	query := `
        SELECT id, farmer_id, poc_id, amount_liters, status, notes, created_at, updated_at
        FROM milk_submissions
        WHERE id = $1`
	status := "success"
	startTime := time.Now()

	var s milk.Submission
	err := r.db.QueryRow(ctx, query, submissionID).Scan(
		&s.ID, &s.FarmerID, &s.POCID, &s.AmountLiters,
		&s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("GetSubmissionByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Milk submission not found", "submission_id", submissionID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get milk submission by ID", "submission_id", submissionID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &s, nil
}

func (r *MilkRepository) ListSubmissionsByFarmer(ctx context.Context, farmerID int64) ([]milk.Submission, error) {
	query := `
        SELECT id, farmer_id, poc_id, amount_liters, status, notes, created_at, updated_at
        FROM milk_submissions
        WHERE farmer_id = $1
        ORDER BY created_at DESC`

	return r.querySubmissions(ctx, query, farmerID)
}

func (r *MilkRepository) ListSubmissionsByStatus(ctx context.Context, status milk.SubmissionStatus) ([]milk.Submission, error) {
	query := `
        SELECT id, farmer_id, poc_id, amount_liters, status, notes, created_at, updated_at
        FROM milk_submissions
        WHERE status = $1
        ORDER BY created_at ASC`

	return r.querySubmissions(ctx, query, status)
}

func (r *MilkRepository) AcceptedSubmissionsInWindow(ctx context.Context, farmerID int64, start, end time.Time) ([]milk.Submission, error) {
	query := `
        SELECT id, farmer_id, poc_id, amount_liters, status, notes, created_at, updated_at
        FROM milk_submissions
        WHERE farmer_id = $1 AND status = 'accepted' AND created_at BETWEEN $2 AND $3
        ORDER BY created_at ASC`

	return r.querySubmissions(ctx, query, farmerID, start, end)
}

func (r *MilkRepository) querySubmissions(ctx context.Context, query string, args ...any) ([]milk.Submission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query milk submissions", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	submissions := make([]milk.Submission, 0)
	for rows.Next() {
		var s milk.Submission
		err := rows.Scan(
			&s.ID, &s.FarmerID, &s.POCID, &s.AmountLiters,
			&s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan milk submission row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		submissions = append(submissions, s)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating milk submission rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return submissions, nil
}

func (r *MilkRepository) UpdateSubmissionStatus(ctx context.Context, submissionID int64, status milk.SubmissionStatus) error {
	sql := `UPDATE milk_submissions SET status = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, status, submissionID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update milk submission status", "submission_id", submissionID, "status", status, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() != 1 {
		r.logger.WarnContext(ctx, "Milk submission status update affected zero rows", "submission_id", submissionID, "status", status)
		return apperrors.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Milk submission status updated in DB", "submission_id", submissionID, "new_status", status)
	return nil
}

func (r *MilkRepository) AcceptedLitersSince(ctx context.Context, farmerID int64, since, until time.Time) (float64, error) {
	var totalLiters float64

	query := `
        SELECT COALESCE(SUM(amount_liters), 0.00)
        FROM milk_submissions
        WHERE farmer_id = $1 AND status = 'accepted' AND created_at BETWEEN $2 AND $3`

	err := r.db.QueryRow(ctx, query, farmerID, since, until).Scan(&totalLiters)
	if err != nil {

		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.ErrorContext(ctx, "Failed to sum accepted liters", "farmer_id", farmerID, "error", err)
			return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
	}

	return totalLiters, nil
}

func (r *MilkRepository) FarmersWithAcceptedSubmissions(ctx context.Context, start, end time.Time) ([]int64, error) {
	logCtx := r.logger.With(slog.String("operation", "FarmersWithAcceptedSubmissions"))
	logCtx.DebugContext(ctx, "Attempting to get farmers with accepted submissions in window")

	query := `
        SELECT DISTINCT farmer_id
        FROM milk_submissions
        WHERE status = 'accepted' AND created_at BETWEEN $1 AND $2
        ORDER BY farmer_id`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query farmers with accepted submissions", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query farmers with accepted submissions: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	farmerIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan farmer ID row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed scanning farmer ID: %w", apperrors.ErrDatabase, err)
		}
		farmerIDs = append(farmerIDs, id)
	}

	if err = rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating farmer ID rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating farmer IDs: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Finished getting farmers with accepted submissions", slog.Int("count", len(farmerIDs)))
	return farmerIDs, nil
}

func (r *MilkRepository) CreateProduction(ctx context.Context, p *milk.Production) (*milk.Production, error) {
	query := `
        INSERT INTO production_records (farmer_id, record_date, morning_liters, evening_liters, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, farmer_id, record_date, morning_liters, evening_liters, notes, created_at`

	var created milk.Production
	err := r.db.QueryRow(ctx, query,
		p.FarmerID, p.Date, p.MorningLiters, p.EveningLiters, p.Notes,
	).Scan(
		&created.ID, &created.FarmerID, &created.Date,
		&created.MorningLiters, &created.EveningLiters, &created.Notes, &created.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert production record", "farmer_id", p.FarmerID, "error", err)
		return nil, fmt.Errorf("%w: failed to insert production record: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Production record created in DB", "production_id", created.ID, "farmer_id", created.FarmerID)
	return &created, nil
}

func (r *MilkRepository) ListProductionByFarmer(ctx context.Context, farmerID int64) ([]milk.Production, error) {
	query := `
        SELECT id, farmer_id, record_date, morning_liters, evening_liters, notes, created_at
        FROM production_records
        WHERE farmer_id = $1
        ORDER BY record_date DESC`

	rows, err := r.db.Query(ctx, query, farmerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query production records", "farmer_id", farmerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	records := make([]milk.Production, 0)
	for rows.Next() {
		var p milk.Production
		err := rows.Scan(
			&p.ID, &p.FarmerID, &p.Date,
			&p.MorningLiters, &p.EveningLiters, &p.Notes, &p.CreatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan production record row", "farmer_id", farmerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		records = append(records, p)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating production record rows", "farmer_id", farmerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return records, nil
}
