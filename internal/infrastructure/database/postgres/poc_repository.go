package postgres

import (
	"context"
	"dairycollect/internal/domain/poc"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

type POCRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ poc.Repository = (*POCRepository)(nil)

func NewPOCRepository(db DBPool, logger *slog.Logger) *POCRepository {
	return &POCRepository{db: db, logger: logger.With("component", "POCRepository")}
}

func (r *POCRepository) SavePOC(ctx context.Context, p *poc.POC) error {
	if p == nil {
		return fmt.Errorf("%w: collection point cannot be nil", apperrors.ErrInvalidArgument)
	}

	if p.POCID == 0 {

		return r.createPOC(ctx, p)
	} else {

		return r.updatePOC(ctx, p)
	}
}

func (r *POCRepository) createPOC(ctx context.Context, p *poc.POC) error {

	r.logger.InfoContext(ctx, "Attempting to insert new collection point", slog.String("name", p.Name))

	query := `
        INSERT INTO pocs (name, phone, location, diary_id, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.Name,
		p.Phone,
		p.Location,
		p.DiaryID,
		p.Active,
	).Scan(
		&p.POCID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert collection point", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Collection point inserted successfully", slog.Int64("pocID", p.POCID))
	return nil
}

func (r *POCRepository) updatePOC(ctx context.Context, p *poc.POC) error {

	r.logger.InfoContext(ctx, "Attempting to update collection point")

	query := `
        UPDATE pocs
        SET name = $1,
            phone = $2,
            location = $3,
            diary_id = $4,
            active = $5,
            updated_at = NOW()
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		p.Name,
		p.Phone,
		p.Location,
		p.DiaryID,
		p.Active,
		p.POCID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update collection point", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, collection point likely not found")

		return poc.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Collection point updated successfully")

	return nil
}

func (r *POCRepository) FindPOCByID(ctx context.Context, pocID int64) (*poc.POC, error) {

	r.logger.InfoContext(ctx, "Attempting to find collection point by ID")

	query := `
        SELECT id, name, phone, location, diary_id, active, created_at, updated_at
        FROM pocs
        WHERE id = $1`

	var p poc.POC
	err := r.db.QueryRow(ctx, query, pocID).Scan(
		&p.POCID,
		&p.Name,
		&p.Phone,
		&p.Location,
		&p.DiaryID,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Collection point not found")
			return nil, poc.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan collection point by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get collection point by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Collection point found successfully")
	return &p, nil
}

func (r *POCRepository) FindAllPOCs(ctx context.Context, activeOnly bool) ([]*poc.POC, error) {

	r.logger.InfoContext(ctx, "Attempting to find all collection points")

	baseQuery := `
        SELECT id, name, phone, location, diary_id, active, created_at, updated_at
        FROM pocs`
	args := []any{}
	query := baseQuery
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {

		r.logger.ErrorContext(ctx, "Failed to query collection points", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query collection points: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	pocs := make([]*poc.POC, 0)
	for rows.Next() {
		var p poc.POC
		err := rows.Scan(
			&p.POCID,
			&p.Name,
			&p.Phone,
			&p.Location,
			&p.DiaryID,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan collection point row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan collection point row: %w", apperrors.ErrDatabase, err)
		}
		pocs = append(pocs, &p)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating collection point rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating collection point rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding collection points", slog.Int("count", len(pocs)))
	return pocs, nil
}

func (r *POCRepository) SetPOCActiveStatus(ctx context.Context, pocID int64, isActive bool) error {

	r.logger.InfoContext(ctx, "Attempting to set collection point active status", slog.Bool("active", isActive))

	query := `
        UPDATE pocs
        SET active = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, isActive, pocID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update collection point active status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update collection point active status: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Active status update affected zero rows, collection point likely not found")
		return poc.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Collection point active status updated successfully")
	return nil
}

func (r *POCRepository) AssignDiary(ctx context.Context, pocID int64, diaryID int64) error {

	r.logger.InfoContext(ctx, "Attempting to assign collection point to diary center", slog.Int64("diaryID", diaryID))

	query := `
        UPDATE pocs
        SET diary_id = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, diaryID, pocID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to assign collection point to diary center", slog.Any("error", err))
		return fmt.Errorf("%w: failed to assign collection point to diary center: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Diary assignment affected zero rows, collection point likely not found")
		return poc.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Collection point assigned to diary center successfully")
	return nil
}

func (r *POCRepository) SaveDiary(ctx context.Context, d *poc.Diary) error {
	if d == nil {
		return fmt.Errorf("%w: diary center cannot be nil", apperrors.ErrInvalidArgument)
	}

	if d.DiaryID == 0 {

		return r.createDiary(ctx, d)
	} else {

		return r.updateDiary(ctx, d)
	}
}

func (r *POCRepository) createDiary(ctx context.Context, d *poc.Diary) error {

	r.logger.InfoContext(ctx, "Attempting to insert new diary center", slog.String("name", d.Name))

	query := `
        INSERT INTO diaries (name, location, capacity_liters, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		d.Name,
		d.Location,
		d.CapacityLiters,
	).Scan(
		&d.DiaryID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert diary center", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Diary center inserted successfully", slog.Int64("diaryID", d.DiaryID))
	return nil
}

func (r *POCRepository) updateDiary(ctx context.Context, d *poc.Diary) error {

	r.logger.InfoContext(ctx, "Attempting to update diary center")

	query := `
        UPDATE diaries
        SET name = $1,
            location = $2,
            capacity_liters = $3,
            updated_at = NOW()
        WHERE id = $4`

	cmdTag, err := r.db.Exec(ctx, query,
		d.Name,
		d.Location,
		d.CapacityLiters,
		d.DiaryID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update diary center", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, diary center likely not found")

		return poc.ErrDiaryNotFound
	}

	r.logger.InfoContext(ctx, "Diary center updated successfully")

	return nil
}

func (r *POCRepository) FindDiaryByID(ctx context.Context, diaryID int64) (*poc.Diary, error) {

	r.logger.InfoContext(ctx, "Attempting to find diary center by ID")

	query := `
        SELECT id, name, location, capacity_liters, created_at, updated_at
        FROM diaries
        WHERE id = $1`

	var d poc.Diary
	err := r.db.QueryRow(ctx, query, diaryID).Scan(
		&d.DiaryID,
		&d.Name,
		&d.Location,
		&d.CapacityLiters,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Diary center not found")
			return nil, poc.ErrDiaryNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan diary center by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get diary center by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Diary center found successfully")
	return &d, nil
}

func (r *POCRepository) FindAllDiaries(ctx context.Context) ([]*poc.Diary, error) {

	r.logger.InfoContext(ctx, "Attempting to find all diary centers")

	query := `
        SELECT id, name, location, capacity_liters, created_at, updated_at
        FROM diaries
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query diary centers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query diary centers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	diaries := make([]*poc.Diary, 0)
	for rows.Next() {
		var d poc.Diary
		err := rows.Scan(
			&d.DiaryID,
			&d.Name,
			&d.Location,
			&d.CapacityLiters,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan diary center row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan diary center row: %w", apperrors.ErrDatabase, err)
		}
		diaries = append(diaries, &d)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating diary center rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating diary center rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding diary centers", slog.Int("count", len(diaries)))
	return diaries, nil
}
