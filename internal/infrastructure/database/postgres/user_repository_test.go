package postgres

import (
	"context"
	"dairycollect/internal/domain/user"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func setupUserRepo(t *testing.T) (context.Context, *UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewUserRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestCreateUserWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()

	u := &user.User{
		Phone:        "9800000001",
		Name:         "Asha Devi",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         user.RoleFarmer,
		Active:       true,
	}

	query := `
        INSERT INTO users (phone, name, password_hash, role, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		u.Phone, u.Name, u.PasswordHash, u.Role, u.Active,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), now, now))

	err := repo.Save(ctx, u)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), u.UserID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreateUserWhenPhoneTaken(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()

	u := &user.User{
		Phone:        "9800000001",
		Name:         "Asha Devi",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         user.RoleFarmer,
		Active:       true,
	}

	query := `
        INSERT INTO users (phone, name, password_hash, role, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		u.Phone, u.Name, u.PasswordHash, u.Role, u.Active,
	).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_phone_key"})

	err := repo.Save(ctx, u)
	assert.ErrorIs(t, err, user.ErrDuplicatePhone)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindUserByPhoneReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, phone, name, password_hash, role, active, created_at, updated_at
        FROM users
        WHERE phone = $1`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("9800000001").
		WillReturnRows(pgxmock.NewRows([]string{"id", "phone", "name", "password_hash", "role", "active", "created_at", "updated_at"}).
			AddRow(int64(1), "9800000001", "Asha Devi", "$2a$10$abcdefghijklmnopqrstuv", user.RoleFarmer, true, now, now))

	result, err := repo.FindByPhone(ctx, "9800000001")
	assert.NoError(t, err)
	assert.Equal(t, user.RoleFarmer, result.Role)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindUserByIDReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, phone, name, password_hash, role, active, created_at, updated_at
        FROM users
        WHERE id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

	result, err := repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.Nil(t, result)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
