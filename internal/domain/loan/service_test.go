package loan

import (
	"context"
	"dairycollect/internal/domain/farmer"
	"dairycollect/internal/domain/milk"
	"dairycollect/internal/event"
	"dairycollect/internal/pkg/apperrors"
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

func (m *MockRepository) CreateLoan(ctx context.Context, l *Loan) (*Loan, error) {
	args := m.Called(ctx, l)
	var r0 *Loan
	if args.Get(0) != nil {
		r0 = args.Get(0).(*Loan)
	}
	return r0, args.Error(1)
}

func (m *MockRepository) GetLoanByID(ctx context.Context, loanID int64) (*Loan, error) {
	args := m.Called(ctx, loanID)
	var r0 *Loan
	if args.Get(0) != nil {
		r0 = args.Get(0).(*Loan)
	}
	return r0, args.Error(1)
}

func (m *MockRepository) ListLoans(ctx context.Context, status *LoanStatus) ([]Loan, error) {
	args := m.Called(ctx, status)
	var r0 []Loan
	if args.Get(0) != nil {
		r0 = args.Get(0).([]Loan)
	}
	return r0, args.Error(1)
}

func (m *MockRepository) ListLoansByFarmer(ctx context.Context, farmerID int64) ([]Loan, error) {
	args := m.Called(ctx, farmerID)
	var r0 []Loan
	if args.Get(0) != nil {
		r0 = args.Get(0).([]Loan)
	}
	return r0, args.Error(1)
}

func (m *MockRepository) UpdateLoanStatus(ctx context.Context, l *Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockRepository) OutstandingDebt(ctx context.Context, farmerID int64) (float64, error) {
	args := m.Called(ctx, farmerID)
	return args.Get(0).(float64), args.Error(1)
}

type MockMilkRepository struct {
	mock.Mock
}

func (m *MockMilkRepository) CreateSubmission(ctx context.Context, sub *milk.Submission) (*milk.Submission, error) {
	args := m.Called(ctx, sub)
	var r0 *milk.Submission
	if args.Get(0) != nil {
		r0 = args.Get(0).(*milk.Submission)
	}
	return r0, args.Error(1)
}

func (m *MockMilkRepository) GetSubmissionByID(ctx context.Context, submissionID int64) (*milk.Submission, error) {
	args := m.Called(ctx, submissionID)
	var r0 *milk.Submission
	if args.Get(0) != nil {
		r0 = args.Get(0).(*milk.Submission)
	}
	return r0, args.Error(1)
}

func (m *MockMilkRepository) ListSubmissionsByFarmer(ctx context.Context, farmerID int64) ([]milk.Submission, error) {
	args := m.Called(ctx, farmerID)
	var r0 []milk.Submission
	if args.Get(0) != nil {
		r0 = args.Get(0).([]milk.Submission)
	}
	return r0, args.Error(1)
}

func (m *MockMilkRepository) ListSubmissionsByStatus(ctx context.Context, status milk.SubmissionStatus) ([]milk.Submission, error) {
	args := m.Called(ctx, status)
	var r0 []milk.Submission
	if args.Get(0) != nil {
		r0 = args.Get(0).([]milk.Submission)
	}
	return r0, args.Error(1)
}

func (m *MockMilkRepository) UpdateSubmissionStatus(ctx context.Context, submissionID int64, status milk.SubmissionStatus) error {
	args := m.Called(ctx, submissionID, status)
	return args.Error(0)
}

func (m *MockMilkRepository) AcceptedLitersSince(ctx context.Context, farmerID int64, since, until time.Time) (float64, error) {
	args := m.Called(ctx, farmerID, since, until)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockMilkRepository) AcceptedSubmissionsInWindow(ctx context.Context, farmerID int64, start, end time.Time) ([]milk.Submission, error) {
	args := m.Called(ctx, farmerID, start, end)
	var r0 []milk.Submission
	if args.Get(0) != nil {
		r0 = args.Get(0).([]milk.Submission)
	}
	return r0, args.Error(1)
}

func (m *MockMilkRepository) FarmersWithAcceptedSubmissions(ctx context.Context, start, end time.Time) ([]int64, error) {
	args := m.Called(ctx, start, end)
	var r0 []int64
	if args.Get(0) != nil {
		r0 = args.Get(0).([]int64)
	}
	return r0, args.Error(1)
}

func (m *MockMilkRepository) CreateProduction(ctx context.Context, p *milk.Production) (*milk.Production, error) {
	args := m.Called(ctx, p)
	var r0 *milk.Production
	if args.Get(0) != nil {
		r0 = args.Get(0).(*milk.Production)
	}
	return r0, args.Error(1)
}

func (m *MockMilkRepository) ListProductionByFarmer(ctx context.Context, farmerID int64) ([]milk.Production, error) {
	args := m.Called(ctx, farmerID)
	var r0 []milk.Production
	if args.Get(0) != nil {
		r0 = args.Get(0).([]milk.Production)
	}
	return r0, args.Error(1)
}

type MockFarmerService struct {
	mock.Mock
}

func (m *MockFarmerService) RegisterFarmer(ctx context.Context, name, phone, address string) (*farmer.Farmer, error) {
	args := m.Called(ctx, name, phone, address)
	var r0 *farmer.Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).(*farmer.Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerService) GetFarmer(ctx context.Context, farmerID int64) (*farmer.Farmer, error) {
	args := m.Called(ctx, farmerID)
	var r0 *farmer.Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).(*farmer.Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerService) ListFarmers(ctx context.Context, activeOnly bool) ([]*farmer.Farmer, error) {
	args := m.Called(ctx, activeOnly)
	var r0 []*farmer.Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*farmer.Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerService) ListFarmersByPOC(ctx context.Context, pocID int64) ([]*farmer.Farmer, error) {
	args := m.Called(ctx, pocID)
	var r0 []*farmer.Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*farmer.Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerService) UpdateFarmer(ctx context.Context, farmerID int64, name, phone, address string) error {
	args := m.Called(ctx, farmerID, name, phone, address)
	return args.Error(0)
}

func (m *MockFarmerService) AssignPOC(ctx context.Context, farmerID int64, pocID int64) error {
	args := m.Called(ctx, farmerID, pocID)
	return args.Error(0)
}

func (m *MockFarmerService) DeactivateFarmer(ctx context.Context, farmerID int64) error {
	args := m.Called(ctx, farmerID)
	return args.Error(0)
}

func (m *MockFarmerService) ReactivateFarmer(ctx context.Context, farmerID int64) error {
	args := m.Called(ctx, farmerID)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishFarmerRegistered(ctx context.Context, evt event.FarmerRegisteredEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishFarmerUpdated(ctx context.Context, evt event.FarmerUpdatedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishMilkReviewed(ctx context.Context, evt event.MilkReviewedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishPaymentBooked(ctx context.Context, evt event.PaymentBookedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishLoanDecided(ctx context.Context, evt event.LoanDecidedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func newTestService() (LoanService, *MockRepository, *MockMilkRepository, *MockFarmerService, *MockEventPublisher) {
	repo := new(MockRepository)
	milkRepo := new(MockMilkRepository)
	farmerSvc := new(MockFarmerService)
	pub := new(MockEventPublisher)
	svc := NewLoanService(repo, milkRepo, farmerSvc, pub, logger)
	return svc, repo, milkRepo, farmerSvc, pub
}

func activeFarmer(id int64) *farmer.Farmer {
	return &farmer.Farmer{FarmerID: id, Name: "Asha Devi", Phone: "9800000001", Active: true}
}

func TestRequestLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending loan for an active farmer", func(t *testing.T) {
		svc, repo, _, farmerSvc, _ := newTestService()
		farmerSvc.On("GetFarmer", ctx, int64(7)).Return(activeFarmer(7), nil)
		repo.On("CreateLoan", ctx, mock.AnythingOfType("*loan.Loan")).
			Return(&Loan{ID: 1, FarmerID: 7, LoanAmount: 20_000, Purpose: "feed purchase", Status: StatusPending}, nil)

		l, err := svc.RequestLoan(ctx, 7, 20_000, "feed purchase")
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, l.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown farmers", func(t *testing.T) {
		svc, repo, _, farmerSvc, _ := newTestService()
		farmerSvc.On("GetFarmer", ctx, int64(99)).Return((*farmer.Farmer)(nil), farmer.ErrNotFound)

		_, err := svc.RequestLoan(ctx, 99, 20_000, "feed purchase")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})

	t.Run("rejects inactive farmers", func(t *testing.T) {
		svc, repo, _, farmerSvc, _ := newTestService()
		inactive := activeFarmer(7)
		inactive.Active = false
		farmerSvc.On("GetFarmer", ctx, int64(7)).Return(inactive, nil)

		_, err := svc.RequestLoan(ctx, 7, 20_000, "feed purchase")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid amounts before touching storage", func(t *testing.T) {
		svc, repo, _, farmerSvc, _ := newTestService()
		farmerSvc.On("GetFarmer", ctx, int64(7)).Return(activeFarmer(7), nil)

		_, err := svc.RequestLoan(ctx, 7, 0, "feed purchase")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		repo.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})
}

func TestApproveLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("approves a pending loan and publishes the decision", func(t *testing.T) {
		svc, repo, _, farmerSvc, pub := newTestService()
		repo.On("GetLoanByID", ctx, int64(1)).
			Return(&Loan{ID: 1, FarmerID: 7, LoanAmount: 20_000, Status: StatusPending}, nil)
		repo.On("UpdateLoanStatus", ctx, mock.AnythingOfType("*loan.Loan")).Return(nil)
		farmerSvc.On("GetFarmer", ctx, int64(7)).Return(activeFarmer(7), nil)
		pub.On("PublishLoanDecided", ctx, mock.AnythingOfType("event.LoanDecidedEvent")).Return(nil)

		l, err := svc.ApproveLoan(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, l.Status)
		assert.NotNil(t, l.DecidedAt)
		pub.AssertExpectations(t)
	})

	t.Run("approval sticks even when event publishing fails", func(t *testing.T) {
		svc, repo, _, farmerSvc, pub := newTestService()
		repo.On("GetLoanByID", ctx, int64(1)).
			Return(&Loan{ID: 1, FarmerID: 7, LoanAmount: 20_000, Status: StatusPending}, nil)
		repo.On("UpdateLoanStatus", ctx, mock.AnythingOfType("*loan.Loan")).Return(nil)
		farmerSvc.On("GetFarmer", ctx, int64(7)).Return(activeFarmer(7), nil)
		pub.On("PublishLoanDecided", ctx, mock.AnythingOfType("event.LoanDecidedEvent")).
			Return(errors.New("broker down"))

		l, err := svc.ApproveLoan(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, l.Status)
	})

	t.Run("refuses to approve a decided loan", func(t *testing.T) {
		svc, repo, _, _, pub := newTestService()
		repo.On("GetLoanByID", ctx, int64(1)).
			Return(&Loan{ID: 1, FarmerID: 7, Status: StatusRejected}, nil)

		_, err := svc.ApproveLoan(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
		repo.AssertNotCalled(t, "UpdateLoanStatus", mock.Anything, mock.Anything)
		pub.AssertNotCalled(t, "PublishLoanDecided", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for unknown loans", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		repo.On("GetLoanByID", ctx, int64(42)).Return((*Loan)(nil), apperrors.ErrNotFound)

		_, err := svc.ApproveLoan(ctx, 42)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCompleteLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("completes an approved loan without publishing a decision event", func(t *testing.T) {
		svc, repo, _, _, pub := newTestService()
		repo.On("GetLoanByID", ctx, int64(1)).
			Return(&Loan{ID: 1, FarmerID: 7, Status: StatusApproved}, nil)
		repo.On("UpdateLoanStatus", ctx, mock.AnythingOfType("*loan.Loan")).Return(nil)

		l, err := svc.CompleteLoan(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, StatusCompleted, l.Status)
		pub.AssertNotCalled(t, "PublishLoanDecided", mock.Anything, mock.Anything)
	})
}

func TestFarmerSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	t.Run("combines both eligibility models", func(t *testing.T) {
		svc, repo, milkRepo, farmerSvc, _ := newTestService()
		farmerSvc.On("GetFarmer", ctx, int64(7)).Return(activeFarmer(7), nil)

		windowStart := now.AddDate(0, 0, -EligibilityWindowDays)
		monthStart := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
		milkRepo.On("AcceptedLitersSince", ctx, int64(7), windowStart, now).Return(60.0, nil)
		milkRepo.On("AcceptedLitersSince", ctx, int64(7), monthStart, now).Return(120.0, nil)
		repo.On("OutstandingDebt", ctx, int64(7)).Return(5_000.0, nil)

		summary, err := svc.FarmerSummary(ctx, 7, now)
		assert.NoError(t, err)
		// 60 L in the 15-day window: 60 * 400 * 0.6.
		assert.InDelta(t, 14_400.0, summary.EligibleAmount, 0.001)
		// 120 L this month: 120 * 400 * 0.5 ceiling and 120 * 400 income.
		assert.InDelta(t, 24_000.0, summary.MaxLoanAmount, 0.001)
		assert.InDelta(t, 48_000.0, summary.MonthlyIncome, 0.001)
		assert.InDelta(t, 5_000.0, summary.CurrentDebt, 0.001)
	})

	t.Run("returns not found for unknown farmers", func(t *testing.T) {
		svc, _, _, farmerSvc, _ := newTestService()
		farmerSvc.On("GetFarmer", ctx, int64(99)).Return((*farmer.Farmer)(nil), farmer.ErrNotFound)

		_, err := svc.FarmerSummary(ctx, 99, now)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("propagates volume aggregation failures", func(t *testing.T) {
		svc, _, milkRepo, farmerSvc, _ := newTestService()
		farmerSvc.On("GetFarmer", ctx, int64(7)).Return(activeFarmer(7), nil)
		milkRepo.On("AcceptedLitersSince", ctx, int64(7), mock.Anything, mock.Anything).
			Return(0.0, errors.New("query timeout"))

		_, err := svc.FarmerSummary(ctx, 7, now)
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
	})
}
