package handler

import (
	"bytes"
	"context"
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/milk"
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

type MockMilkService struct {
	mock.Mock
}

func (m *MockMilkService) SubmitMilk(ctx context.Context, farmerID int64, pocID *int64, amountLiters float64, notes string) (*milk.Submission, error) {
	args := m.Called(ctx, farmerID, pocID, amountLiters, notes)
	if s, ok := args.Get(0).(*milk.Submission); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkService) GetSubmission(ctx context.Context, submissionID int64) (*milk.Submission, error) {
	args := m.Called(ctx, submissionID)
	if s, ok := args.Get(0).(*milk.Submission); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkService) ListFarmerSubmissions(ctx context.Context, farmerID int64) ([]milk.Submission, error) {
	args := m.Called(ctx, farmerID)
	if subs, ok := args.Get(0).([]milk.Submission); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkService) ListSubmissionsByStatus(ctx context.Context, status milk.SubmissionStatus) ([]milk.Submission, error) {
	args := m.Called(ctx, status)
	if subs, ok := args.Get(0).([]milk.Submission); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkService) ReviewSubmission(ctx context.Context, submissionID int64, outcome milk.SubmissionStatus) (*milk.Submission, error) {
	args := m.Called(ctx, submissionID, outcome)
	if s, ok := args.Get(0).(*milk.Submission); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkService) RecordProduction(ctx context.Context, farmerID int64, date time.Time, morningLiters, eveningLiters float64, notes string) (*milk.Production, error) {
	args := m.Called(ctx, farmerID, date, morningLiters, eveningLiters, notes)
	if p, ok := args.Get(0).(*milk.Production); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilkService) ListFarmerProduction(ctx context.Context, farmerID int64) ([]milk.Production, error) {
	args := m.Called(ctx, farmerID)
	if records, ok := args.Get(0).([]milk.Production); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMilkHandlerSubmitMilk(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("records a pending submission", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		pocID := int64(7)
		sub := &milk.Submission{ID: 11, FarmerID: 3, POCID: &pocID, AmountLiters: 12.5, Status: milk.StatusPending}
		mockService.On("SubmitMilk", mock.Anything, int64(3), &pocID, 12.5, "").Return(sub, nil)

		body := bytes.NewBufferString(`{"farmerId":3,"pocId":7,"amountLiters":12.5}`)
		req := httptest.NewRequest(http.MethodPost, "/milk", body)
		rec := httptest.NewRecorder()

		handler.SubmitMilk(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.SubmissionResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "11", resp.ID)
		assert.Equal(t, "pending", resp.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects a non-positive volume", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		body := bytes.NewBufferString(`{"farmerId":3,"amountLiters":0}`)
		req := httptest.NewRequest(http.MethodPost, "/milk", body)
		rec := httptest.NewRecorder()

		handler.SubmitMilk(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "SubmitMilk")
	})
}

func TestMilkHandlerReviewSubmission(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("accepts a pending submission", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		sub := &milk.Submission{ID: 11, FarmerID: 3, AmountLiters: 12.5, Status: milk.StatusAccepted}
		mockService.On("ReviewSubmission", mock.Anything, int64(11), milk.StatusAccepted).Return(sub, nil)

		body := bytes.NewBufferString(`{"outcome":"accepted"}`)
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/milk/11/review", body), "submissionID", "11")
		rec := httptest.NewRecorder()

		handler.ReviewSubmission(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.SubmissionResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "accepted", resp.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects an unknown outcome", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		body := bytes.NewBufferString(`{"outcome":"maybe"}`)
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/milk/11/review", body), "submissionID", "11")
		rec := httptest.NewRecorder()

		handler.ReviewSubmission(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "ReviewSubmission")
	})

	t.Run("maps a double review to conflict", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		mockService.On("ReviewSubmission", mock.Anything, int64(11), milk.StatusRejected).
			Return((*milk.Submission)(nil), apperrors.ErrInvalidStatusTransition)

		body := bytes.NewBufferString(`{"outcome":"rejected"}`)
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/milk/11/review", body), "submissionID", "11")
		rec := httptest.NewRecorder()

		handler.ReviewSubmission(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestMilkHandlerListSubmissionsByStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("defaults to the pending queue", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		mockService.On("ListSubmissionsByStatus", mock.Anything, milk.StatusPending).Return([]milk.Submission{
			{ID: 1, Status: milk.StatusPending},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/milk", nil)
		rec := httptest.NewRecorder()

		handler.ListSubmissionsByStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.SubmissionResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/milk?status=bogus", nil)
		rec := httptest.NewRecorder()

		handler.ListSubmissionsByStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "ListSubmissionsByStatus")
	})
}

func TestMilkHandlerRecordProduction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("records a daily production entry", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		rec2 := &milk.Production{ID: 4, FarmerID: 3, Date: date, MorningLiters: 6.5, EveningLiters: 4.0}
		mockService.On("RecordProduction", mock.Anything, int64(3), date, 6.5, 4.0, "").Return(rec2, nil)

		body := bytes.NewBufferString(`{"farmerId":3,"date":"2025-06-10","morningLiters":6.5,"eveningLiters":4.0}`)
		req := httptest.NewRequest(http.MethodPost, "/production", body)
		rec := httptest.NewRecorder()

		handler.RecordProduction(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.ProductionResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 10.5, resp.TotalLiters)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		mockService := new(MockMilkService)
		handler := NewMilkHandler(mockService, logger)

		body := bytes.NewBufferString(`{"farmerId":3,"date":"10/06/2025","morningLiters":6.5,"eveningLiters":4.0}`)
		req := httptest.NewRequest(http.MethodPost, "/production", body)
		rec := httptest.NewRecorder()

		handler.RecordProduction(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "RecordProduction")
	})
}
