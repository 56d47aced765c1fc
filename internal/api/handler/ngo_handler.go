package handler

import (
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/ngo"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type NGOHandler struct {
	service ngo.NGOService
	logger  *slog.Logger
}

func NewNGOHandler(s ngo.NGOService, l *slog.Logger) *NGOHandler {
	if s == nil {
		panic("ngo service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &NGOHandler{
		service: s,
		logger:  l.With("component", "NGOHandler"),
	}
}

func getNGOIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "ngoID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: ngoID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid ngoID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateNGO handles POST /ngos
// @Summary Register a partner NGO
// @Description Registers an NGO with a name, contact phone and the region it operates in. Reports are scoped to that region.
// @Tags NGOs
// @Accept json
// @Produce json
// @Param request body dto.CreateNGORequest true "NGO creation request"
// @Success 201 {object} dto.NGOResponse "NGO successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ngos [post]
// @Security BearerAuth
func (h *NGOHandler) CreateNGO(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNGORequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateNGO(r.Context(), req.Name, req.Phone, req.Region)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create NGO", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewNGOResponse(created)
	h.logger.InfoContext(r.Context(), "NGO created", slog.String("ngoID", resp.NGOID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetNGO handles GET /ngos/{ngoID}
// @Summary Retrieve NGO details
// @Description Retrieves details for a specific NGO by its ID.
// @Tags NGOs
// @Produce json
// @Param ngoID path int true "NGO ID" Minimum(1)
// @Success 200 {object} dto.NGOResponse "NGO details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid NGO ID"
// @Failure 404 {object} dto.ErrorResponse "NGO not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ngos/{ngoID} [get]
// @Security BearerAuth
func (h *NGOHandler) GetNGO(w http.ResponseWriter, r *http.Request) {
	ngoID, err := getNGOIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	n, err := h.service.GetNGO(r.Context(), ngoID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, ngo.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get NGO", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewNGOResponse(n))
}

// ListNGOs handles GET /ngos
// @Summary List NGOs
// @Description Retrieves a list of partner NGOs. Pass `active=true` to list only active ones.
// @Tags NGOs
// @Produce json
// @Param active query bool false "Only include active NGOs" Example(true)
// @Success 200 {array} dto.NGOResponse "List of NGOs"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ngos [get]
// @Security BearerAuth
func (h *NGOHandler) ListNGOs(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	ngos, err := h.service.ListNGOs(r.Context(), activeOnly)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list NGOs", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.NGOResponse, len(ngos))
	for i := range ngos {
		resp[i] = dto.NewNGOResponse(ngos[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateNGO handles PUT /ngos/{ngoID}
// @Summary Update NGO details
// @Description Replaces the name, phone and region of a specific NGO.
// @Tags NGOs
// @Accept json
// @Produce json
// @Param ngoID path int true "NGO ID" Minimum(1)
// @Param request body dto.UpdateNGORequest true "Updated NGO payload"
// @Success 204 "NGO successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid NGO ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "NGO not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ngos/{ngoID} [put]
// @Security BearerAuth
func (h *NGOHandler) UpdateNGO(w http.ResponseWriter, r *http.Request) {
	ngoID, err := getNGOIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateNGORequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.UpdateNGO(r.Context(), ngoID, req.Name, req.Phone, req.Region); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, ngo.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update NGO", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "NGO updated", slog.Int64("ngoID", ngoID))
	respondJSON(w, http.StatusNoContent, nil)
}

// DeactivateNGO handles DELETE /ngos/{ngoID}
// @Summary Deactivate an NGO
// @Description Marks a partner NGO as inactive.
// @Tags NGOs
// @Produce json
// @Param ngoID path int true "NGO ID" Minimum(1)
// @Success 204 "NGO successfully deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid NGO ID"
// @Failure 404 {object} dto.ErrorResponse "NGO not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ngos/{ngoID} [delete]
// @Security BearerAuth
func (h *NGOHandler) DeactivateNGO(w http.ResponseWriter, r *http.Request) {
	ngoID, err := getNGOIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeactivateNGO(r.Context(), ngoID); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, ngo.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to deactivate NGO", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "NGO deactivated", slog.Int64("ngoID", ngoID))
	respondJSON(w, http.StatusNoContent, nil)
}

// ActivityReport handles GET /ngos/{ngoID}/report
// @Summary Build an NGO activity report
// @Description Aggregates farmer counts, accepted milk volume and booked payments for the NGO's region over the requested window. Both `from` and `to` must be YYYY-MM-DD dates.
// @Tags NGOs
// @Produce json
// @Param ngoID path int true "NGO ID" Minimum(1)
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.ActivityReportResponse "Activity report"
// @Failure 400 {object} dto.ErrorResponse "Invalid NGO ID or window parameters"
// @Failure 404 {object} dto.ErrorResponse "NGO not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ngos/{ngoID}/report [get]
// @Security BearerAuth
func (h *NGOHandler) ActivityReport(w http.ResponseWriter, r *http.Request) {
	ngoID, err := getNGOIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		respondError(w, fmt.Errorf("%w: from must be formatted as YYYY-MM-DD", apperrors.ErrInvalidArgument))
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		respondError(w, fmt.Errorf("%w: to must be formatted as YYYY-MM-DD", apperrors.ErrInvalidArgument))
		return
	}
	if to.Before(from) {
		respondError(w, fmt.Errorf("%w: to must not be before from", apperrors.ErrInvalidArgument))
		return
	}

	report, err := h.service.ActivityReport(r.Context(), ngoID, from, to)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, ngo.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to build activity report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Activity report built", slog.Int64("ngoID", ngoID), slog.String("region", report.Region))
	respondJSON(w, http.StatusOK, dto.NewActivityReportResponse(report))
}
