package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"dairycollect/internal/domain/farmer"
	"dairycollect/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type FarmerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ farmer.FarmerRepository = (*FarmerRepository)(nil)

func NewFarmerRepository(db DBPool, logger *slog.Logger) *FarmerRepository {
	if db == nil {
		panic("DBPool cannot be nil for FarmerRepository")
	}
	if logger == nil {

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewFarmerRepository, using default stderr handler")
	}
	return &FarmerRepository{
		db:     db,
		logger: logger.With("component", "FarmerRepository"),
	}
}

func (r *FarmerRepository) Save(ctx context.Context, f *farmer.Farmer) error {
	if f == nil {
		return fmt.Errorf("%w: farmer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if f.FarmerID == 0 {

		return r.createFarmer(ctx, f)
	} else {

		return r.updateFarmer(ctx, f)
	}
}

func (r *FarmerRepository) createFarmer(ctx context.Context, f *farmer.Farmer) error {

	r.logger.InfoContext(ctx, "Attempting to insert new farmer", slog.String("name", f.Name))

	query := `
        INSERT INTO farmers (name, phone, address, poc_id, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		f.Name,
		f.Phone,
		f.Address,
		f.POCID,
		f.Active,
	).Scan(
		&f.FarmerID,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {

		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert farmer due to unique constraint violation", slog.String("phone", f.Phone))
			return farmer.ErrDuplicatePhone
		}
		r.logger.ErrorContext(ctx, "Failed to insert farmer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert farmer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Farmer inserted successfully", slog.Int64("farmerID", f.FarmerID))
	return nil
}

func (r *FarmerRepository) updateFarmer(ctx context.Context, f *farmer.Farmer) error {

	r.logger.InfoContext(ctx, "Attempting to update farmer")

	query := `
        UPDATE farmers
        SET name = $1,
            phone = $2,
            address = $3,
            poc_id = $4,
            active = $5,
            updated_at = NOW()
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		f.Name,
		f.Phone,
		f.Address,
		f.POCID,
		f.Active,
		f.FarmerID,
	)

	if err != nil {

		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to update farmer due to unique constraint violation", slog.Any("error", err), slog.String("phone", f.Phone))
			return farmer.ErrDuplicatePhone
		}
		r.logger.ErrorContext(ctx, "Failed to update farmer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update farmer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, farmer likely not found")

		return farmer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Farmer updated successfully")

	return nil
}

func (r *FarmerRepository) FindByID(ctx context.Context, farmerID int64) (*farmer.Farmer, error) {

	r.logger.InfoContext(ctx, "Attempting to find farmer by ID")

	query := `
        SELECT id, name, phone, address, poc_id, active, created_at, updated_at
        FROM farmers
        WHERE id = $1`

	var f farmer.Farmer
	err := r.db.QueryRow(ctx, query, farmerID).Scan(
		&f.FarmerID,
		&f.Name,
		&f.Phone,
		&f.Address,
		&f.POCID,
		&f.Active,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Farmer not found")
			return nil, farmer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan farmer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get farmer by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Farmer found successfully")
	return &f, nil
}

func (r *FarmerRepository) FindByPhone(ctx context.Context, phone string) (*farmer.Farmer, error) {

	r.logger.InfoContext(ctx, "Attempting to find farmer by phone")

	query := `
        SELECT id, name, phone, address, poc_id, active, created_at, updated_at
        FROM farmers
        WHERE phone = $1`

	var f farmer.Farmer
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&f.FarmerID,
		&f.Name,
		&f.Phone,
		&f.Address,
		&f.POCID,
		&f.Active,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Farmer not found for the given phone")
			return nil, farmer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan farmer by phone", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get farmer by phone: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Farmer found successfully by phone", slog.Int64("farmerID", f.FarmerID))
	return &f, nil
}

func (r *FarmerRepository) FindAll(ctx context.Context, activeOnly bool) ([]*farmer.Farmer, error) {

	r.logger.InfoContext(ctx, "Attempting to find all farmers")

	baseQuery := `
        SELECT id, name, phone, address, poc_id, active, created_at, updated_at
        FROM farmers`
	args := []any{}
	query := baseQuery
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {

		r.logger.ErrorContext(ctx, "Failed to query farmers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query farmers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	farmers := make([]*farmer.Farmer, 0)
	for rows.Next() {
		var f farmer.Farmer
		err := rows.Scan(
			&f.FarmerID,
			&f.Name,
			&f.Phone,
			&f.Address,
			&f.POCID,
			&f.Active,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan farmer row", slog.Any("error", err))

			return nil, fmt.Errorf("%w: failed to scan farmer row: %w", apperrors.ErrDatabase, err)
		}
		farmers = append(farmers, &f)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating farmer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating farmer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding farmers", slog.Int("count", len(farmers)))
	return farmers, nil
}

func (r *FarmerRepository) FindByPOC(ctx context.Context, pocID int64) ([]*farmer.Farmer, error) {

	r.logger.InfoContext(ctx, "Attempting to find farmers by collection point")

	query := `
        SELECT id, name, phone, address, poc_id, active, created_at, updated_at
        FROM farmers
        WHERE poc_id = $1
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, pocID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query farmers by collection point", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query farmers by collection point: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	farmers := make([]*farmer.Farmer, 0)
	for rows.Next() {
		var f farmer.Farmer
		err := rows.Scan(
			&f.FarmerID,
			&f.Name,
			&f.Phone,
			&f.Address,
			&f.POCID,
			&f.Active,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan farmer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan farmer row: %w", apperrors.ErrDatabase, err)
		}
		farmers = append(farmers, &f)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating farmer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating farmer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding farmers by collection point", slog.Int("count", len(farmers)))
	return farmers, nil
}

func (r *FarmerRepository) SetActiveStatus(ctx context.Context, farmerID int64, isActive bool) error {

	r.logger.InfoContext(ctx, "Attempting to set farmer active status", slog.Bool("active", isActive))

	query := `
        UPDATE farmers
        SET active = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, isActive, farmerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update farmer active status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update farmer active status: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Active status update affected zero rows, farmer likely not found")
		return farmer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Farmer active status updated successfully")
	return nil
}

func (r *FarmerRepository) AssignPOC(ctx context.Context, farmerID int64, pocID int64) error {

	r.logger.InfoContext(ctx, "Attempting to assign farmer to collection point", slog.Int64("pocID", pocID))

	query := `
        UPDATE farmers
        SET poc_id = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, pocID, farmerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to assign farmer to collection point", slog.Any("error", err))
		return fmt.Errorf("%w: failed to assign farmer to collection point: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Collection point assignment affected zero rows, farmer likely not found")
		return farmer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Farmer assigned to collection point successfully")
	return nil
}
