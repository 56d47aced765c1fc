package postgres

import (
	"context"
	"dairycollect/internal/domain/ngo"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

type NGORepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ ngo.Repository = (*NGORepository)(nil)

func NewNGORepository(db DBPool, logger *slog.Logger) *NGORepository {
	return &NGORepository{db: db, logger: logger.With("component", "NGORepository")}
}

func (r *NGORepository) Save(ctx context.Context, n *ngo.NGO) error {
	if n == nil {
		return fmt.Errorf("%w: NGO cannot be nil", apperrors.ErrInvalidArgument)
	}

	if n.NGOID == 0 {

		return r.createNGO(ctx, n)
	} else {

		return r.updateNGO(ctx, n)
	}
}

func (r *NGORepository) createNGO(ctx context.Context, n *ngo.NGO) error {

	r.logger.InfoContext(ctx, "Attempting to insert new NGO", slog.String("name", n.Name))

	query := `
        INSERT INTO ngos (name, phone, region, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		n.Name,
		n.Phone,
		n.Region,
		n.Active,
	).Scan(
		&n.NGOID,
		&n.CreatedAt,
		&n.UpdatedAt,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert NGO", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "NGO inserted successfully", slog.Int64("ngoID", n.NGOID))
	return nil
}

func (r *NGORepository) updateNGO(ctx context.Context, n *ngo.NGO) error {

	r.logger.InfoContext(ctx, "Attempting to update NGO")

	query := `
        UPDATE ngos
        SET name = $1,
            phone = $2,
            region = $3,
            active = $4,
            updated_at = NOW()
        WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query,
		n.Name,
		n.Phone,
		n.Region,
		n.Active,
		n.NGOID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update NGO", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, NGO likely not found")

		return ngo.ErrNotFound
	}

	r.logger.InfoContext(ctx, "NGO updated successfully")

	return nil
}

func (r *NGORepository) FindByID(ctx context.Context, ngoID int64) (*ngo.NGO, error) {

	r.logger.InfoContext(ctx, "Attempting to find NGO by ID")

	query := `
        SELECT id, name, phone, region, active, created_at, updated_at
        FROM ngos
        WHERE id = $1`

	var n ngo.NGO
	err := r.db.QueryRow(ctx, query, ngoID).Scan(
		&n.NGOID,
		&n.Name,
		&n.Phone,
		&n.Region,
		&n.Active,
		&n.CreatedAt,
		&n.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "NGO not found")
			return nil, ngo.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan NGO by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get NGO by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "NGO found successfully")
	return &n, nil
}

func (r *NGORepository) FindAll(ctx context.Context, activeOnly bool) ([]*ngo.NGO, error) {

	r.logger.InfoContext(ctx, "Attempting to find all NGOs")

	baseQuery := `
        SELECT id, name, phone, region, active, created_at, updated_at
        FROM ngos`
	args := []any{}
	query := baseQuery
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {

		r.logger.ErrorContext(ctx, "Failed to query NGOs", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query NGOs: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	ngos := make([]*ngo.NGO, 0)
	for rows.Next() {
		var n ngo.NGO
		err := rows.Scan(
			&n.NGOID,
			&n.Name,
			&n.Phone,
			&n.Region,
			&n.Active,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan NGO row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan NGO row: %w", apperrors.ErrDatabase, err)
		}
		ngos = append(ngos, &n)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating NGO rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating NGO rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding NGOs", slog.Int("count", len(ngos)))
	return ngos, nil
}

func (r *NGORepository) SetActiveStatus(ctx context.Context, ngoID int64, isActive bool) error {

	r.logger.InfoContext(ctx, "Attempting to set NGO active status", slog.Bool("active", isActive))

	query := `
        UPDATE ngos
        SET active = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, isActive, ngoID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update NGO active status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update NGO active status: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Active status update affected zero rows, NGO likely not found")
		return ngo.ErrNotFound
	}

	r.logger.InfoContext(ctx, "NGO active status updated successfully")
	return nil
}

// BuildActivityReport scopes farmers to the region through their collection
// point's location.
func (r *NGORepository) BuildActivityReport(ctx context.Context, region string, from, to time.Time) (*ngo.ActivityReport, error) {
	logCtx := r.logger.With(slog.String("operation", "BuildActivityReport"), slog.String("region", region))
	logCtx.InfoContext(ctx, "Building activity report")

	report := &ngo.ActivityReport{
		Region:      region,
		From:        from,
		To:          to,
		GeneratedAt: time.Now(),
	}

	farmersQuery := `
        SELECT COUNT(*)
        FROM farmers f
        JOIN pocs p ON f.poc_id = p.id
        WHERE p.location = $1`

	if err := r.db.QueryRow(ctx, farmersQuery, region).Scan(&report.TotalFarmers); err != nil {
		logCtx.ErrorContext(ctx, "Failed to count farmers in region", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count farmers in region: %w", apperrors.ErrDatabase, err)
	}

	litersQuery := `
        SELECT COALESCE(SUM(s.amount_liters), 0.00)
        FROM milk_submissions s
        JOIN farmers f ON s.farmer_id = f.id
        JOIN pocs p ON f.poc_id = p.id
        WHERE p.location = $1 AND s.status = 'accepted' AND s.created_at BETWEEN $2 AND $3`

	if err := r.db.QueryRow(ctx, litersQuery, region, from, to).Scan(&report.AcceptedLiters); err != nil {
		logCtx.ErrorContext(ctx, "Failed to sum accepted liters in region", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to sum accepted liters in region: %w", apperrors.ErrDatabase, err)
	}

	paymentsQuery := `
        SELECT COUNT(*), COALESCE(SUM(pay.amount), 0.00)
        FROM payments pay
        JOIN farmers f ON pay.farmer_id = f.id
        JOIN pocs p ON f.poc_id = p.id
        WHERE p.location = $1 AND pay.created_at BETWEEN $2 AND $3`

	if err := r.db.QueryRow(ctx, paymentsQuery, region, from, to).Scan(&report.PaymentsBooked, &report.PaymentsAmount); err != nil {
		logCtx.ErrorContext(ctx, "Failed to aggregate payments in region", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to aggregate payments in region: %w", apperrors.ErrDatabase, err)
	}

	logCtx.InfoContext(ctx, "Activity report built",
		slog.Int64("total_farmers", report.TotalFarmers),
		slog.Float64("accepted_liters", report.AcceptedLiters),
		slog.Int64("payments_booked", report.PaymentsBooked))
	return report, nil
}
