package ngo

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, n *NGO) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, ngoID int64) (*NGO, error) {
	args := m.Called(ctx, ngoID)
	var r0 *NGO
	if args.Get(0) != nil {
		r0 = args.Get(0).(*NGO)
	}
	return r0, args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, activeOnly bool) ([]*NGO, error) {
	args := m.Called(ctx, activeOnly)
	var r0 []*NGO
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*NGO)
	}
	return r0, args.Error(1)
}

func (m *MockRepository) SetActiveStatus(ctx context.Context, ngoID int64, isActive bool) error {
	args := m.Called(ctx, ngoID, isActive)
	return args.Error(0)
}

func (m *MockRepository) BuildActivityReport(ctx context.Context, region string, from, to time.Time) (*ActivityReport, error) {
	args := m.Called(ctx, region, from, to)
	var r0 *ActivityReport
	if args.Get(0) != nil {
		r0 = args.Get(0).(*ActivityReport)
	}
	return r0, args.Error(1)
}

func newTestService() (NGOService, *MockRepository) {
	repo := new(MockRepository)
	return NewNGOService(repo, logger), repo
}

func TestCreateNGO(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active NGO", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("Save", ctx, mock.MatchedBy(func(n *NGO) bool {
			return n.Name == "Gramin Vikas Sanstha" && n.Region == "Chitwan" && n.Active
		})).Return(nil)

		n, err := svc.CreateNGO(ctx, "Gramin Vikas Sanstha", "9800000010", "Chitwan")
		assert.NoError(t, err)
		assert.True(t, n.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a blank name or region", func(t *testing.T) {
		svc, repo := newTestService()

		_, err := svc.CreateNGO(ctx, "", "9800000010", "Chitwan")
		assert.Error(t, err)
		_, err = svc.CreateNGO(ctx, "Gramin Vikas Sanstha", "9800000010", "  ")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestActivityReport(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)

	t.Run("builds the report for the NGO's region", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("FindByID", ctx, int64(5)).
			Return(&NGO{NGOID: 5, Name: "Gramin Vikas Sanstha", Region: "Chitwan", Active: true}, nil)
		repo.On("BuildActivityReport", ctx, "Chitwan", from, to).
			Return(&ActivityReport{
				Region:         "Chitwan",
				From:           from,
				To:             to,
				TotalFarmers:   12,
				AcceptedLiters: 840.5,
				PaymentsBooked: 11,
				PaymentsAmount: 252_150,
			}, nil)

		report, err := svc.ActivityReport(ctx, 5, from, to)
		assert.NoError(t, err)
		assert.Equal(t, "Chitwan", report.Region)
		assert.Equal(t, int64(12), report.TotalFarmers)
		assert.InDelta(t, 840.5, report.AcceptedLiters, 0.001)
	})

	t.Run("a quiet period yields a zero-valued report", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("FindByID", ctx, int64(5)).
			Return(&NGO{NGOID: 5, Region: "Chitwan", Active: true}, nil)
		repo.On("BuildActivityReport", ctx, "Chitwan", from, to).
			Return(&ActivityReport{Region: "Chitwan", From: from, To: to}, nil)

		report, err := svc.ActivityReport(ctx, 5, from, to)
		assert.NoError(t, err)
		assert.Zero(t, report.TotalFarmers)
		assert.Zero(t, report.AcceptedLiters)
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("FindByID", ctx, int64(5)).
			Return(&NGO{NGOID: 5, Region: "Chitwan", Active: true}, nil)

		_, err := svc.ActivityReport(ctx, 5, to, from)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "BuildActivityReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns not found for unknown NGOs", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("FindByID", ctx, int64(99)).Return((*NGO)(nil), ErrNotFound)

		_, err := svc.ActivityReport(ctx, 99, from, to)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("propagates aggregation failures", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("FindByID", ctx, int64(5)).
			Return(&NGO{NGOID: 5, Region: "Chitwan", Active: true}, nil)
		repo.On("BuildActivityReport", ctx, "Chitwan", from, to).
			Return((*ActivityReport)(nil), errors.New("query timeout"))

		_, err := svc.ActivityReport(ctx, 5, from, to)
		assert.Error(t, err)
	})
}
