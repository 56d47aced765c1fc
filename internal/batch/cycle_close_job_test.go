package batch_test

import (
	"context"
	"dairycollect/internal/batch"
	"dairycollect/internal/domain/milk"
	"dairycollect/internal/domain/payment"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMilkRepository struct {
	mock.Mock
}

func (m *MockMilkRepository) CreateSubmission(ctx context.Context, submission *milk.Submission) (*milk.Submission, error) {
	args := m.Called(ctx, submission)
	if s, ok := args.Get(0).(*milk.Submission); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkRepository) GetSubmissionByID(ctx context.Context, submissionID int64) (*milk.Submission, error) {
	args := m.Called(ctx, submissionID)
	if s, ok := args.Get(0).(*milk.Submission); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkRepository) ListSubmissionsByFarmer(ctx context.Context, farmerID int64) ([]milk.Submission, error) {
	args := m.Called(ctx, farmerID)
	if subs, ok := args.Get(0).([]milk.Submission); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkRepository) ListSubmissionsByStatus(ctx context.Context, status milk.SubmissionStatus) ([]milk.Submission, error) {
	args := m.Called(ctx, status)
	if subs, ok := args.Get(0).([]milk.Submission); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
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
	if subs, ok := args.Get(0).([]milk.Submission); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkRepository) FarmersWithAcceptedSubmissions(ctx context.Context, start, end time.Time) ([]int64, error) {
	args := m.Called(ctx, start, end)
	if ids, ok := args.Get(0).([]int64); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkRepository) CreateProduction(ctx context.Context, production *milk.Production) (*milk.Production, error) {
	args := m.Called(ctx, production)
	if p, ok := args.Get(0).(*milk.Production); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkRepository) ListProductionByFarmer(ctx context.Context, farmerID int64) ([]milk.Production, error) {
	args := m.Called(ctx, farmerID)
	if records, ok := args.Get(0).([]milk.Production); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) FarmerSummary(ctx context.Context, farmerID int64, now time.Time) (*payment.PaymentSummary, error) {
	args := m.Called(ctx, farmerID, now)
	if s, ok := args.Get(0).(*payment.PaymentSummary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) ListFarmerPayments(ctx context.Context, farmerID int64) ([]payment.Payment, error) {
	args := m.Called(ctx, farmerID)
	if payments, ok := args.Get(0).([]payment.Payment); ok {
		return payments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) BookCyclePayment(ctx context.Context, farmerID int64, cycleStart, cycleEnd time.Time) (*payment.Payment, error) {
	args := m.Called(ctx, farmerID, cycleStart, cycleEnd)
	if p, ok := args.Get(0).(*payment.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) BulkUpdateStatus(ctx context.Context, paymentIDs []int64, status payment.PaymentStatus) error {
	args := m.Called(ctx, paymentIDs, status)
	return args.Error(0)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCycleCloseJobRun(t *testing.T) {
	ctx := context.Background()

	t.Run("books a payment for every farmer with accepted volume", func(t *testing.T) {
		milkRepo := new(MockMilkRepository)
		paymentSvc := new(MockPaymentService)
		job := batch.NewCycleCloseJob(milkRepo, paymentSvc, testLogger)

		milkRepo.On("FarmersWithAcceptedSubmissions", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]int64{1, 4}, nil)
		paymentSvc.On("BookCyclePayment", ctx, int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(&payment.Payment{ID: 10, FarmerID: 1, MilkLiters: 40, Amount: 12000, Status: payment.StatusPending}, nil)
		paymentSvc.On("BookCyclePayment", ctx, int64(4), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(&payment.Payment{ID: 11, FarmerID: 4, MilkLiters: 12.5, Amount: 3750, Status: payment.StatusPending}, nil)

		err := job.Run(ctx)

		assert.NoError(t, err)
		milkRepo.AssertExpectations(t)
		paymentSvc.AssertExpectations(t)
	})

	t.Run("skips farmers whose cycle is already booked", func(t *testing.T) {
		milkRepo := new(MockMilkRepository)
		paymentSvc := new(MockPaymentService)
		job := batch.NewCycleCloseJob(milkRepo, paymentSvc, testLogger)

		milkRepo.On("FarmersWithAcceptedSubmissions", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]int64{1}, nil)
		paymentSvc.On("BookCyclePayment", ctx, int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return((*payment.Payment)(nil), nil)

		err := job.Run(ctx)

		assert.NoError(t, err)
		paymentSvc.AssertExpectations(t)
	})

	t.Run("does nothing when no farmer delivered", func(t *testing.T) {
		milkRepo := new(MockMilkRepository)
		paymentSvc := new(MockPaymentService)
		job := batch.NewCycleCloseJob(milkRepo, paymentSvc, testLogger)

		milkRepo.On("FarmersWithAcceptedSubmissions", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]int64{}, nil)

		err := job.Run(ctx)

		assert.NoError(t, err)
		paymentSvc.AssertNotCalled(t, "BookCyclePayment")
	})

	t.Run("aborts when the farmer listing fails", func(t *testing.T) {
		milkRepo := new(MockMilkRepository)
		paymentSvc := new(MockPaymentService)
		job := batch.NewCycleCloseJob(milkRepo, paymentSvc, testLogger)

		milkRepo.On("FarmersWithAcceptedSubmissions", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(([]int64)(nil), errors.New("connection refused"))

		err := job.Run(ctx)

		assert.Error(t, err)
		paymentSvc.AssertNotCalled(t, "BookCyclePayment")
	})

	t.Run("reports booking failures in the job error", func(t *testing.T) {
		milkRepo := new(MockMilkRepository)
		paymentSvc := new(MockPaymentService)
		job := batch.NewCycleCloseJob(milkRepo, paymentSvc, testLogger)

		milkRepo.On("FarmersWithAcceptedSubmissions", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]int64{1, 2}, nil)
		paymentSvc.On("BookCyclePayment", ctx, int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(&payment.Payment{ID: 10, FarmerID: 1}, nil)
		paymentSvc.On("BookCyclePayment", ctx, int64(2), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return((*payment.Payment)(nil), errors.New("insert failed"))

		err := job.Run(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "1 errors")
		paymentSvc.AssertExpectations(t)
	})
}
