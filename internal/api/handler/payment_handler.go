package handler

import (
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/payment"
	"dairycollect/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type PaymentHandler struct {
	service payment.PaymentService
	logger  *slog.Logger
}

func NewPaymentHandler(s payment.PaymentService, l *slog.Logger) *PaymentHandler {
	if s == nil {
		panic("payment service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &PaymentHandler{
		service: s,
		logger:  l.With("component", "PaymentHandler"),
	}
}

// ListFarmerPayments handles GET /payments/farmer/{farmerID}
// @Summary List a farmer's payments
// @Description Lists the payments booked for a specific farmer, newest cycle first.
// @Tags Payments
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 200 {array} dto.PaymentResponse "List of payments"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/farmer/{farmerID} [get]
// @Security BearerAuth
func (h *PaymentHandler) ListFarmerPayments(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	payments, err := h.service.ListFarmerPayments(r.Context(), farmerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list farmer payments", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = dto.NewPaymentResponse(&payments[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// FarmerPaymentSummary handles GET /payments/farmer/{farmerID}/summary
// @Summary Retrieve a farmer's running cycle summary
// @Description Aggregates the farmer's accepted volume in the current semi-monthly cycle, the payment it would earn, and the days remaining until the next payment date.
// @Tags Payments
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 200 {object} dto.PaymentSummaryResponse "Running cycle summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/farmer/{farmerID}/summary [get]
// @Security BearerAuth
func (h *PaymentHandler) FarmerPaymentSummary(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := h.service.FarmerSummary(r.Context(), farmerID, time.Now())
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to build payment summary", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPaymentSummaryResponse(summary))
}

// BulkUpdateStatus handles POST /payments/bulk-status
// @Summary Update payment statuses in bulk
// @Description Moves a set of payments to the given status in a single transaction. All payments must exist or the whole batch is rolled back.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.BulkPaymentStatusRequest true "Bulk status payload"
// @Success 204 "Payment statuses successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 403 {object} dto.ErrorResponse "Caller is not allowed to update payment statuses"
// @Failure 404 {object} dto.ErrorResponse "One or more payments not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/bulk-status [post]
// @Security BearerAuth
func (h *PaymentHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkPaymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.BulkUpdateStatus(r.Context(), req.PaymentIDs, payment.PaymentStatus(req.Status)); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to bulk update payment statuses", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Payment statuses updated", slog.Int("count", len(req.PaymentIDs)), slog.String("status", req.Status))
	respondJSON(w, http.StatusNoContent, nil)
}
