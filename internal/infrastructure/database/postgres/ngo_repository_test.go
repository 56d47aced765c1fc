package postgres

import (
	"context"
	"dairycollect/internal/domain/ngo"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func setupNGORepo(t *testing.T) (context.Context, *NGORepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewNGORepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestCreateNGOWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupNGORepo(t)
	defer mockPool.Close()

	n := &ngo.NGO{
		Name:   "Rural Dairy Watch",
		Phone:  "9800000020",
		Region: "Chitwan",
		Active: true,
	}

	query := `
        INSERT INTO ngos (name, phone, region, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		n.Name, n.Phone, n.Region, n.Active,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), now, now))

	err := repo.Save(ctx, n)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n.NGOID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestBuildActivityReportAggregates(t *testing.T) {
	ctx, repo, mockPool := setupNGORepo(t)
	defer mockPool.Close()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	farmersQuery := `
        SELECT COUNT(*)
        FROM farmers f
        JOIN pocs p ON f.poc_id = p.id
        WHERE p.location = $1`

	litersQuery := `
        SELECT COALESCE(SUM(s.amount_liters), 0.00)
        FROM milk_submissions s
        JOIN farmers f ON s.farmer_id = f.id
        JOIN pocs p ON f.poc_id = p.id
        WHERE p.location = $1 AND s.status = 'accepted' AND s.created_at BETWEEN $2 AND $3`

	paymentsQuery := `
        SELECT COUNT(*), COALESCE(SUM(pay.amount), 0.00)
        FROM payments pay
        JOIN farmers f ON pay.farmer_id = f.id
        JOIN pocs p ON f.poc_id = p.id
        WHERE p.location = $1 AND pay.created_at BETWEEN $2 AND $3`

	mockPool.ExpectQuery(regexp.QuoteMeta(farmersQuery)).WithArgs("Chitwan").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mockPool.ExpectQuery(regexp.QuoteMeta(litersQuery)).WithArgs("Chitwan", from, to).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(640.5))
	mockPool.ExpectQuery(regexp.QuoteMeta(paymentsQuery)).WithArgs("Chitwan", from, to).
		WillReturnRows(pgxmock.NewRows([]string{"count", "coalesce"}).AddRow(int64(9), 192150.0))

	report, err := repo.BuildActivityReport(ctx, "Chitwan", from, to)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), report.TotalFarmers)
	assert.Equal(t, 640.5, report.AcceptedLiters)
	assert.Equal(t, int64(9), report.PaymentsBooked)
	assert.Equal(t, 192150.0, report.PaymentsAmount)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSetNGOActiveStatusNotFound(t *testing.T) {
	ctx, repo, mockPool := setupNGORepo(t)
	defer mockPool.Close()

	query := `
        UPDATE ngos
        SET active = $1, updated_at = NOW()
        WHERE id = $2`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(false, int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetActiveStatus(ctx, 99, false)
	assert.ErrorIs(t, err, ngo.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
