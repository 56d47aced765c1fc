package postgres

import (
	"context"
	"dairycollect/internal/domain/transport"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

type TransportRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ transport.Repository = (*TransportRepository)(nil)

func NewTransportRepository(db DBPool, logger *slog.Logger) *TransportRepository {
	return &TransportRepository{db: db, logger: logger.With("component", "TransportRepository")}
}

func (r *TransportRepository) Save(ctx context.Context, t *transport.Transport) error {
	if t == nil {
		return fmt.Errorf("%w: transport cannot be nil", apperrors.ErrInvalidArgument)
	}

	if t.TransportID == 0 {

		return r.createTransport(ctx, t)
	} else {

		return r.updateTransport(ctx, t)
	}
}

func (r *TransportRepository) createTransport(ctx context.Context, t *transport.Transport) error {

	r.logger.InfoContext(ctx, "Attempting to insert new transport", slog.String("driver", t.DriverName))

	query := `
        INSERT INTO transports (driver_name, phone, vehicle_number, diary_id, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		t.DriverName,
		t.Phone,
		t.VehicleNumber,
		t.DiaryID,
		t.Active,
	).Scan(
		&t.TransportID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert transport", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Transport inserted successfully", slog.Int64("transportID", t.TransportID))
	return nil
}

func (r *TransportRepository) updateTransport(ctx context.Context, t *transport.Transport) error {

	r.logger.InfoContext(ctx, "Attempting to update transport")

	query := `
        UPDATE transports
        SET driver_name = $1,
            phone = $2,
            vehicle_number = $3,
            diary_id = $4,
            active = $5,
            updated_at = NOW()
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		t.DriverName,
		t.Phone,
		t.VehicleNumber,
		t.DiaryID,
		t.Active,
		t.TransportID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update transport", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, transport likely not found")

		return transport.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Transport updated successfully")

	return nil
}

func (r *TransportRepository) FindByID(ctx context.Context, transportID int64) (*transport.Transport, error) {

	r.logger.InfoContext(ctx, "Attempting to find transport by ID")

	query := `
        SELECT id, driver_name, phone, vehicle_number, diary_id, active, created_at, updated_at
        FROM transports
        WHERE id = $1`

	var t transport.Transport
	err := r.db.QueryRow(ctx, query, transportID).Scan(
		&t.TransportID,
		&t.DriverName,
		&t.Phone,
		&t.VehicleNumber,
		&t.DiaryID,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Transport not found")
			return nil, transport.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan transport by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get transport by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Transport found successfully")
	return &t, nil
}

func (r *TransportRepository) FindAll(ctx context.Context, activeOnly bool) ([]*transport.Transport, error) {

	r.logger.InfoContext(ctx, "Attempting to find all transports")

	baseQuery := `
        SELECT id, driver_name, phone, vehicle_number, diary_id, active, created_at, updated_at
        FROM transports`
	args := []any{}
	query := baseQuery
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {

		r.logger.ErrorContext(ctx, "Failed to query transports", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query transports: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	transports := make([]*transport.Transport, 0)
	for rows.Next() {
		var t transport.Transport
		err := rows.Scan(
			&t.TransportID,
			&t.DriverName,
			&t.Phone,
			&t.VehicleNumber,
			&t.DiaryID,
			&t.Active,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan transport row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan transport row: %w", apperrors.ErrDatabase, err)
		}
		transports = append(transports, &t)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating transport rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating transport rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding transports", slog.Int("count", len(transports)))
	return transports, nil
}

func (r *TransportRepository) SetActiveStatus(ctx context.Context, transportID int64, isActive bool) error {

	r.logger.InfoContext(ctx, "Attempting to set transport active status", slog.Bool("active", isActive))

	query := `
        UPDATE transports
        SET active = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, isActive, transportID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update transport active status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update transport active status: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Active status update affected zero rows, transport likely not found")
		return transport.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Transport active status updated successfully")
	return nil
}

func (r *TransportRepository) AssignDiary(ctx context.Context, transportID int64, diaryID int64) error {

	r.logger.InfoContext(ctx, "Attempting to assign transport to diary center", slog.Int64("diaryID", diaryID))

	query := `
        UPDATE transports
        SET diary_id = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, diaryID, transportID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to assign transport to diary center", slog.Any("error", err))
		return fmt.Errorf("%w: failed to assign transport to diary center: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Diary assignment affected zero rows, transport likely not found")
		return transport.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Transport assigned to diary center successfully")
	return nil
}
