package handler

import (
	"context"
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/farmer"
	"dairycollect/internal/domain/loan"
	"dairycollect/internal/domain/ngo"
	"dairycollect/internal/domain/poc"
	"dairycollect/internal/domain/transport"
	"dairycollect/internal/domain/user"
	"dairycollect/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, farmer.ErrNotFound),
		errors.Is(err, poc.ErrNotFound),
		errors.Is(err, poc.ErrDiaryNotFound),
		errors.Is(err, transport.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, ngo.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrNotEligible):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, apperrors.ErrForbidden):
		status, message = http.StatusForbidden, "Forbidden."
	case errors.Is(err, apperrors.ErrDuplicatePhone),
		errors.Is(err, farmer.ErrDuplicatePhone),
		errors.Is(err, user.ErrDuplicatePhone),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidStatusTransition):
		status, message = http.StatusConflict, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getLoanIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "loanID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: loanID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid loanID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// RequestLoan handles POST /loans
//
// @Summary Request a new loan
// @Description Submits a loan request for a farmer. The loan is stored as PENDING; volume-based eligibility is reported on the summary endpoint and weighed during review, not enforced here.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.RequestLoanRequest true "Loan request payload"
// @Success 201 {object} dto.LoanResponse "Loan request successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
// @Security BearerAuth
func (h *LoanHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	createdLoan, err := h.service.RequestLoan(r.Context(), req.FarmerID, req.Amount, req.Purpose)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(createdLoan)
	respondJSON(w, http.StatusCreated, resp)
}

// GetLoan handles GET /loans/{loanID}
//
// @Summary Retrieve loan details
// @Description Retrieves a single loan by its ID.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanResponse "Loan details successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	domainLoan, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(domainLoan)
	respondJSON(w, http.StatusOK, resp)
}

// ListLoans handles GET /loans
//
// @Summary List loans
// @Description Lists loans, optionally filtered by status via the `status` query parameter (PENDING, APPROVED, REJECTED or COMPLETED).
// @Tags Loans
// @Produce json
// @Param status query string false "Filter by loan status" Enums(PENDING, APPROVED, REJECTED, COMPLETED)
// @Success 200 {array} dto.LoanResponse "List of loans"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [get]
// @Security BearerAuth
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	var statusFilter *loan.LoanStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := loan.LoanStatus(strings.ToUpper(statusStr))
		switch status {
		case loan.StatusPending, loan.StatusApproved, loan.StatusRejected, loan.StatusCompleted:
			statusFilter = &status
		default:
			respondError(w, fmt.Errorf("%w: unknown loan status: %s", apperrors.ErrInvalidArgument, statusStr))
			return
		}
	}

	loans, err := h.service.ListLoans(r.Context(), statusFilter)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.LoanResponse, len(loans))
	for i := range loans {
		resp[i] = dto.NewLoanResponse(&loans[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListFarmerLoans handles GET /loans/farmer/{farmerID}
//
// @Summary List loans for a farmer
// @Description Lists all loans requested by a specific farmer, newest first.
// @Tags Loans
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 200 {array} dto.LoanResponse "List of loans"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/farmer/{farmerID} [get]
// @Security BearerAuth
func (h *LoanHandler) ListFarmerLoans(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	loans, err := h.service.ListFarmerLoans(r.Context(), farmerID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.LoanResponse, len(loans))
	for i := range loans {
		resp[i] = dto.NewLoanResponse(&loans[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// FarmerLoanSummary handles GET /loans/farmer/{farmerID}/summary
//
// @Summary Retrieve a farmer's loan eligibility summary
// @Description Computes the farmer's current debt, estimated monthly income and the loan amount they remain eligible for.
// @Tags Loans
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 200 {object} dto.LoanSummaryResponse "Loan eligibility summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/farmer/{farmerID}/summary [get]
// @Security BearerAuth
func (h *LoanHandler) FarmerLoanSummary(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := h.service.FarmerSummary(r.Context(), farmerID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	resp := dto.NewLoanSummaryResponse(summary)
	respondJSON(w, http.StatusOK, resp)
}

// ApproveLoan handles PUT /loans/{loanID}/approve
//
// @Summary Approve a pending loan
// @Description Moves a PENDING loan to APPROVED and stamps the decision time.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanResponse "Loan successfully approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan is not in a state that can be approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/approve [put]
// @Security BearerAuth
func (h *LoanHandler) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.ApproveLoan)
}

// RejectLoan handles PUT /loans/{loanID}/reject
//
// @Summary Reject a pending loan
// @Description Moves a PENDING loan to REJECTED and stamps the decision time.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanResponse "Loan successfully rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan is not in a state that can be rejected"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/reject [put]
// @Security BearerAuth
func (h *LoanHandler) RejectLoan(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.RejectLoan)
}

// CompleteLoan handles PUT /loans/{loanID}/complete
//
// @Summary Mark an approved loan as completed
// @Description Moves an APPROVED loan to COMPLETED once it has been fully repaid.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanResponse "Loan successfully completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan is not in a state that can be completed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/complete [put]
// @Security BearerAuth
func (h *LoanHandler) CompleteLoan(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.CompleteLoan)
}

func (h *LoanHandler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, loanID int64) (*loan.Loan, error)) {
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	decidedLoan, err := op(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(decidedLoan)
	respondJSON(w, http.StatusOK, resp)
}
