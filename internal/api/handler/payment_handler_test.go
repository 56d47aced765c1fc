package handler

import (
	"bytes"
	"context"
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/payment"
	"dairycollect/internal/pkg/apperrors"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func TestPaymentHandlerListFarmerPayments(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("lists payments with formatted amounts", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService, logger)

		mockService.On("ListFarmerPayments", mock.Anything, int64(3)).Return([]payment.Payment{
			{ID: 1, FarmerID: 3, MilkLiters: 40, Amount: 12000, Status: payment.StatusPending},
			{ID: 2, FarmerID: 3, MilkLiters: 31.5, Amount: 9450, Status: payment.StatusPaid},
		}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/payments/farmer/3", nil), "farmerID", "3")
		rec := httptest.NewRecorder()

		handler.ListFarmerPayments(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.PaymentResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "12000.00", resp[0].Amount)
		mockService.AssertExpectations(t)
	})
}

func TestPaymentHandlerFarmerPaymentSummary(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("returns the running cycle summary", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService, logger)

		summary := &payment.PaymentSummary{
			CurrentCycleMilk:     22.5,
			PendingPayment:       6750,
			NextPaymentDate:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			DaysUntilNextPayment: 5,
		}
		mockService.On("FarmerSummary", mock.Anything, int64(3), mock.AnythingOfType("time.Time")).Return(summary, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/payments/farmer/3/summary", nil), "farmerID", "3")
		rec := httptest.NewRecorder()

		handler.FarmerPaymentSummary(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.PaymentSummaryResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 22.5, resp.CurrentCycleMilk)
		assert.Equal(t, "6750.00", resp.PendingPayment)
		assert.Equal(t, 5, resp.DaysUntilNextPayment)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 404 for a missing farmer", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService, logger)

		mockService.On("FarmerSummary", mock.Anything, int64(99), mock.AnythingOfType("time.Time")).
			Return((*payment.PaymentSummary)(nil), apperrors.ErrNotFound)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/payments/farmer/99/summary", nil), "farmerID", "99")
		rec := httptest.NewRecorder()

		handler.FarmerPaymentSummary(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestPaymentHandlerBulkUpdateStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("updates the batch and returns no content", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService, logger)

		mockService.On("BulkUpdateStatus", mock.Anything, []int64{1, 2, 3}, payment.StatusPaid).Return(nil)

		body := bytes.NewBufferString(`{"paymentIds":[1,2,3],"status":"PAID"}`)
		req := httptest.NewRequest(http.MethodPost, "/payments/bulk-status", body)
		rec := httptest.NewRecorder()

		handler.BulkUpdateStatus(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService, logger)

		body := bytes.NewBufferString(`{"paymentIds":[],"status":"PAID"}`)
		req := httptest.NewRequest(http.MethodPost, "/payments/bulk-status", body)
		rec := httptest.NewRecorder()

		handler.BulkUpdateStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "BulkUpdateStatus")
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService, logger)

		body := bytes.NewBufferString(`{"paymentIds":[1],"status":"SETTLED"}`)
		req := httptest.NewRequest(http.MethodPost, "/payments/bulk-status", body)
		rec := httptest.NewRecorder()

		handler.BulkUpdateStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "BulkUpdateStatus")
	})

	t.Run("rolls the not-found error up as 404", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService, logger)

		mockService.On("BulkUpdateStatus", mock.Anything, []int64{7}, payment.StatusPaid).
			Return(apperrors.ErrNotFound)

		body := bytes.NewBufferString(`{"paymentIds":[7],"status":"PAID"}`)
		req := httptest.NewRequest(http.MethodPost, "/payments/bulk-status", body)
		rec := httptest.NewRecorder()

		handler.BulkUpdateStatus(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}
