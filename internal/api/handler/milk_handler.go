package handler

import (
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/milk"
	"dairycollect/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type MilkHandler struct {
	service milk.MilkService
	logger  *slog.Logger
}

func NewMilkHandler(s milk.MilkService, l *slog.Logger) *MilkHandler {
	if s == nil {
		panic("milk service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &MilkHandler{
		service: s,
		logger:  l.With("component", "MilkHandler"),
	}
}

func getSubmissionIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "submissionID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: submissionID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid submissionID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// SubmitMilk handles POST /milk
// @Summary Submit milk for collection
// @Description Records a milk submission for a farmer. The submission starts in the pending state until a collection point operator reviews it.
// @Tags Milk
// @Accept json
// @Produce json
// @Param request body dto.SubmitMilkRequest true "Milk submission payload"
// @Success 201 {object} dto.SubmissionResponse "Submission successfully recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or inactive farmer"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /milk [post]
// @Security BearerAuth
func (h *MilkHandler) SubmitMilk(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received milk submission request")

	var req dto.SubmitMilkRequest
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

	sub, err := h.service.SubmitMilk(r.Context(), req.FarmerID, req.POCID, req.AmountLiters, req.Notes)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to record milk submission", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewSubmissionResponse(sub)
	h.logger.InfoContext(r.Context(), "Milk submission recorded", slog.String("submissionID", resp.ID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetSubmission handles GET /milk/{submissionID}
// @Summary Retrieve a milk submission
// @Description Retrieves a single milk submission by its ID.
// @Tags Milk
// @Produce json
// @Param submissionID path int true "Submission ID" Minimum(1)
// @Success 200 {object} dto.SubmissionResponse "Submission details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid submission ID"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /milk/{submissionID} [get]
// @Security BearerAuth
func (h *MilkHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := getSubmissionIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	sub, err := h.service.GetSubmission(r.Context(), submissionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewSubmissionResponse(sub))
}

// ListFarmerSubmissions handles GET /milk/farmer/{farmerID}
// @Summary List a farmer's milk submissions
// @Description Lists all milk submissions recorded for a specific farmer, newest first.
// @Tags Milk
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 200 {array} dto.SubmissionResponse "List of submissions"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /milk/farmer/{farmerID} [get]
// @Security BearerAuth
func (h *MilkHandler) ListFarmerSubmissions(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	subs, err := h.service.ListFarmerSubmissions(r.Context(), farmerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list farmer submissions", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.SubmissionResponse, len(subs))
	for i := range subs {
		resp[i] = dto.NewSubmissionResponse(&subs[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListSubmissionsByStatus handles GET /milk
// @Summary List milk submissions by status
// @Description Lists milk submissions filtered by the `status` query parameter (pending, accepted or rejected). Defaults to pending so reviewers see their queue.
// @Tags Milk
// @Produce json
// @Param status query string false "Submission status filter" Enums(pending, accepted, rejected) default(pending)
// @Success 200 {array} dto.SubmissionResponse "List of submissions"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /milk [get]
// @Security BearerAuth
func (h *MilkHandler) ListSubmissionsByStatus(w http.ResponseWriter, r *http.Request) {
	statusStr := r.URL.Query().Get("status")
	if statusStr == "" {
		statusStr = string(milk.StatusPending)
	}

	status := milk.SubmissionStatus(strings.ToLower(statusStr))
	switch status {
	case milk.StatusPending, milk.StatusAccepted, milk.StatusRejected:
	default:
		respondError(w, fmt.Errorf("%w: unknown submission status: %s", apperrors.ErrInvalidArgument, statusStr))
		return
	}

	subs, err := h.service.ListSubmissionsByStatus(r.Context(), status)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list submissions by status", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.SubmissionResponse, len(subs))
	for i := range subs {
		resp[i] = dto.NewSubmissionResponse(&subs[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// ReviewSubmission handles PUT /milk/{submissionID}/review
// @Summary Review a pending milk submission
// @Description Settles a pending submission as accepted or rejected. Only pending submissions can be reviewed, and accepted volume feeds payment cycles and loan eligibility.
// @Tags Milk
// @Accept json
// @Produce json
// @Param submissionID path int true "Submission ID" Minimum(1)
// @Param request body dto.ReviewSubmissionRequest true "Review outcome payload"
// @Success 200 {object} dto.SubmissionResponse "Submission successfully reviewed"
// @Failure 400 {object} dto.ErrorResponse "Invalid submission ID or outcome"
// @Failure 403 {object} dto.ErrorResponse "Caller is not allowed to review submissions"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission has already been reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /milk/{submissionID}/review [put]
// @Security BearerAuth
func (h *MilkHandler) ReviewSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := getSubmissionIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.ReviewSubmissionRequest
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

	sub, err := h.service.ReviewSubmission(r.Context(), submissionID, milk.SubmissionStatus(req.Outcome))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to review submission", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Submission reviewed", slog.Int64("submissionID", submissionID), slog.String("outcome", req.Outcome))
	respondJSON(w, http.StatusOK, dto.NewSubmissionResponse(sub))
}

// RecordProduction handles POST /production
// @Summary Record daily production
// @Description Records a farmer's morning and evening production volumes for a calendar day. This is the farmer's own diary and does not feed payments.
// @Tags Production
// @Accept json
// @Produce json
// @Param request body dto.RecordProductionRequest true "Daily production payload"
// @Success 201 {object} dto.ProductionResponse "Production record successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /production [post]
// @Security BearerAuth
func (h *MilkHandler) RecordProduction(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordProductionRequest
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", apperrors.ErrInvalidArgument))
		return
	}

	rec, err := h.service.RecordProduction(r.Context(), req.FarmerID, date, req.MorningLiters, req.EveningLiters, req.Notes)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to record production", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Production recorded", slog.Int64("farmerID", req.FarmerID), slog.String("date", req.Date))
	respondJSON(w, http.StatusCreated, dto.NewProductionResponse(rec))
}

// ListFarmerProduction handles GET /production/farmer/{farmerID}
// @Summary List a farmer's production records
// @Description Lists the daily production records kept for a specific farmer, newest first.
// @Tags Production
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 200 {array} dto.ProductionResponse "List of production records"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /production/farmer/{farmerID} [get]
// @Security BearerAuth
func (h *MilkHandler) ListFarmerProduction(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	records, err := h.service.ListFarmerProduction(r.Context(), farmerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list farmer production", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.ProductionResponse, len(records))
	for i := range records {
		resp[i] = dto.NewProductionResponse(&records[i])
	}
	respondJSON(w, http.StatusOK, resp)
}
