package handler

import (
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/poc"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type POCHandler struct {
	service poc.POCService
	logger  *slog.Logger
}

func NewPOCHandler(s poc.POCService, l *slog.Logger) *POCHandler {
	if s == nil {
		panic("poc service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &POCHandler{
		service: s,
		logger:  l.With("component", "POCHandler"),
	}
}

func getPOCIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "pocID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: pocID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid pocID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

func getDiaryIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "diaryID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: diaryID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid diaryID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreatePOC handles POST /pocs
// @Summary Create a collection point
// @Description Creates a new milk collection point with a name, contact phone and location.
// @Tags CollectionPoints
// @Accept json
// @Produce json
// @Param request body dto.CreatePOCRequest true "Collection point creation request"
// @Success 201 {object} dto.POCResponse "Collection point successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pocs [post]
// @Security BearerAuth
func (h *POCHandler) CreatePOC(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePOCRequest
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

	created, err := h.service.CreatePOC(r.Context(), req.Name, req.Phone, req.Location)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create collection point", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewPOCResponse(created)
	h.logger.InfoContext(r.Context(), "Collection point created", slog.String("pocID", resp.POCID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetPOC handles GET /pocs/{pocID}
// @Summary Retrieve collection point details
// @Description Retrieves details for a specific collection point by its ID.
// @Tags CollectionPoints
// @Produce json
// @Param pocID path int true "Collection point ID" Minimum(1)
// @Success 200 {object} dto.POCResponse "Collection point details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid collection point ID"
// @Failure 404 {object} dto.ErrorResponse "Collection point not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pocs/{pocID} [get]
// @Security BearerAuth
func (h *POCHandler) GetPOC(w http.ResponseWriter, r *http.Request) {
	pocID, err := getPOCIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.service.GetPOC(r.Context(), pocID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, poc.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get collection point", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPOCResponse(p))
}

// ListPOCs handles GET /pocs
// @Summary List collection points
// @Description Retrieves a list of collection points. Pass `active=true` to list only active ones.
// @Tags CollectionPoints
// @Produce json
// @Param active query bool false "Only include active collection points" Example(true)
// @Success 200 {array} dto.POCResponse "List of collection points"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pocs [get]
// @Security BearerAuth
func (h *POCHandler) ListPOCs(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	pocs, err := h.service.ListPOCs(r.Context(), activeOnly)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list collection points", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.POCResponse, len(pocs))
	for i := range pocs {
		resp[i] = dto.NewPOCResponse(pocs[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdatePOC handles PUT /pocs/{pocID}
// @Summary Update collection point details
// @Description Replaces the name, phone and location of a specific collection point.
// @Tags CollectionPoints
// @Accept json
// @Produce json
// @Param pocID path int true "Collection point ID" Minimum(1)
// @Param request body dto.UpdatePOCRequest true "Updated collection point payload"
// @Success 204 "Collection point successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid collection point ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Collection point not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pocs/{pocID} [put]
// @Security BearerAuth
func (h *POCHandler) UpdatePOC(w http.ResponseWriter, r *http.Request) {
	pocID, err := getPOCIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdatePOCRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.UpdatePOC(r.Context(), pocID, req.Name, req.Phone, req.Location); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, poc.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update collection point", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Collection point updated", slog.Int64("pocID", pocID))
	respondJSON(w, http.StatusNoContent, nil)
}

// DeactivatePOC handles DELETE /pocs/{pocID}
// @Summary Deactivate a collection point
// @Description Marks a collection point as inactive. Inactive collection points stop receiving submissions.
// @Tags CollectionPoints
// @Produce json
// @Param pocID path int true "Collection point ID" Minimum(1)
// @Success 204 "Collection point successfully deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid collection point ID"
// @Failure 404 {object} dto.ErrorResponse "Collection point not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pocs/{pocID} [delete]
// @Security BearerAuth
func (h *POCHandler) DeactivatePOC(w http.ResponseWriter, r *http.Request) {
	pocID, err := getPOCIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeactivatePOC(r.Context(), pocID); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, poc.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to deactivate collection point", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Collection point deactivated", slog.Int64("pocID", pocID))
	respondJSON(w, http.StatusNoContent, nil)
}

// AssignDiary handles PUT /pocs/{pocID}/diary
// @Summary Assign a collection point to a diary center
// @Description Attaches a collection point to the diary center its milk is forwarded to.
// @Tags CollectionPoints
// @Accept json
// @Produce json
// @Param pocID path int true "Collection point ID" Minimum(1)
// @Param request body dto.AssignDiaryRequest true "Diary center payload (diaryId must be positive)"
// @Success 204 "Diary center successfully assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid collection point ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Collection point or diary center not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pocs/{pocID}/diary [put]
// @Security BearerAuth
func (h *POCHandler) AssignDiary(w http.ResponseWriter, r *http.Request) {
	pocID, err := getPOCIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.AssignDiaryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.AssignDiary(r.Context(), pocID, req.DiaryID); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, poc.ErrNotFound) && !errors.Is(err, poc.ErrDiaryNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to assign diary center", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Diary center assigned", slog.Int64("pocID", pocID), slog.Int64("diaryID", req.DiaryID))
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateDiary handles POST /diaries
// @Summary Create a diary center
// @Description Creates a new diary center with a name, location and daily intake capacity in liters.
// @Tags Diaries
// @Accept json
// @Produce json
// @Param request body dto.CreateDiaryRequest true "Diary center creation request"
// @Success 201 {object} dto.DiaryResponse "Diary center successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /diaries [post]
// @Security BearerAuth
func (h *POCHandler) CreateDiary(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDiaryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateDiary(r.Context(), req.Name, req.Location, req.CapacityLiters)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create diary center", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewDiaryResponse(created)
	h.logger.InfoContext(r.Context(), "Diary center created", slog.String("diaryID", resp.DiaryID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetDiary handles GET /diaries/{diaryID}
// @Summary Retrieve diary center details
// @Description Retrieves details for a specific diary center by its ID.
// @Tags Diaries
// @Produce json
// @Param diaryID path int true "Diary center ID" Minimum(1)
// @Success 200 {object} dto.DiaryResponse "Diary center details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid diary center ID"
// @Failure 404 {object} dto.ErrorResponse "Diary center not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /diaries/{diaryID} [get]
// @Security BearerAuth
func (h *POCHandler) GetDiary(w http.ResponseWriter, r *http.Request) {
	diaryID, err := getDiaryIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	d, err := h.service.GetDiary(r.Context(), diaryID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, poc.ErrDiaryNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get diary center", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDiaryResponse(d))
}

// ListDiaries handles GET /diaries
// @Summary List diary centers
// @Description Retrieves all diary centers.
// @Tags Diaries
// @Produce json
// @Success 200 {array} dto.DiaryResponse "List of diary centers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /diaries [get]
// @Security BearerAuth
func (h *POCHandler) ListDiaries(w http.ResponseWriter, r *http.Request) {
	diaries, err := h.service.ListDiaries(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list diary centers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.DiaryResponse, len(diaries))
	for i := range diaries {
		resp[i] = dto.NewDiaryResponse(diaries[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateDiary handles PUT /diaries/{diaryID}
// @Summary Update diary center details
// @Description Replaces the name, location and capacity of a specific diary center.
// @Tags Diaries
// @Accept json
// @Produce json
// @Param diaryID path int true "Diary center ID" Minimum(1)
// @Param request body dto.UpdateDiaryRequest true "Updated diary center payload"
// @Success 204 "Diary center successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid diary center ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Diary center not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /diaries/{diaryID} [put]
// @Security BearerAuth
func (h *POCHandler) UpdateDiary(w http.ResponseWriter, r *http.Request) {
	diaryID, err := getDiaryIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateDiaryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.UpdateDiary(r.Context(), diaryID, req.Name, req.Location, req.CapacityLiters); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, poc.ErrDiaryNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update diary center", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Diary center updated", slog.Int64("diaryID", diaryID))
	respondJSON(w, http.StatusNoContent, nil)
}
