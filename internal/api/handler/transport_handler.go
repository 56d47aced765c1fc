package handler

import (
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/transport"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type TransportHandler struct {
	service transport.TransportService
	logger  *slog.Logger
}

func NewTransportHandler(s transport.TransportService, l *slog.Logger) *TransportHandler {
	if s == nil {
		panic("transport service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &TransportHandler{
		service: s,
		logger:  l.With("component", "TransportHandler"),
	}
}

func getTransportIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "transportID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: transportID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid transportID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateTransport handles POST /transports
// @Summary Create a transport
// @Description Registers a transport with a driver name, contact phone and vehicle number.
// @Tags Transports
// @Accept json
// @Produce json
// @Param request body dto.CreateTransportRequest true "Transport creation request"
// @Success 201 {object} dto.TransportResponse "Transport successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transports [post]
// @Security BearerAuth
func (h *TransportHandler) CreateTransport(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransportRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateTransport(r.Context(), req.DriverName, req.Phone, req.VehicleNumber)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create transport", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewTransportResponse(created)
	h.logger.InfoContext(r.Context(), "Transport created", slog.String("transportID", resp.TransportID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetTransport handles GET /transports/{transportID}
// @Summary Retrieve transport details
// @Description Retrieves details for a specific transport by its ID.
// @Tags Transports
// @Produce json
// @Param transportID path int true "Transport ID" Minimum(1)
// @Success 200 {object} dto.TransportResponse "Transport details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid transport ID"
// @Failure 404 {object} dto.ErrorResponse "Transport not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transports/{transportID} [get]
// @Security BearerAuth
func (h *TransportHandler) GetTransport(w http.ResponseWriter, r *http.Request) {
	transportID, err := getTransportIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	t, err := h.service.GetTransport(r.Context(), transportID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, transport.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get transport", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewTransportResponse(t))
}

// ListTransports handles GET /transports
// @Summary List transports
// @Description Retrieves a list of transports. Pass `active=true` to list only active ones.
// @Tags Transports
// @Produce json
// @Param active query bool false "Only include active transports" Example(true)
// @Success 200 {array} dto.TransportResponse "List of transports"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transports [get]
// @Security BearerAuth
func (h *TransportHandler) ListTransports(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	transports, err := h.service.ListTransports(r.Context(), activeOnly)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list transports", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.TransportResponse, len(transports))
	for i := range transports {
		resp[i] = dto.NewTransportResponse(transports[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateTransport handles PUT /transports/{transportID}
// @Summary Update transport details
// @Description Replaces the driver name, phone and vehicle number of a specific transport.
// @Tags Transports
// @Accept json
// @Produce json
// @Param transportID path int true "Transport ID" Minimum(1)
// @Param request body dto.UpdateTransportRequest true "Updated transport payload"
// @Success 204 "Transport successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid transport ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Transport not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transports/{transportID} [put]
// @Security BearerAuth
func (h *TransportHandler) UpdateTransport(w http.ResponseWriter, r *http.Request) {
	transportID, err := getTransportIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateTransportRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.UpdateTransport(r.Context(), transportID, req.DriverName, req.Phone, req.VehicleNumber); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, transport.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update transport", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Transport updated", slog.Int64("transportID", transportID))
	respondJSON(w, http.StatusNoContent, nil)
}

// DeactivateTransport handles DELETE /transports/{transportID}
// @Summary Deactivate a transport
// @Description Marks a transport as inactive so it no longer appears on active routes.
// @Tags Transports
// @Produce json
// @Param transportID path int true "Transport ID" Minimum(1)
// @Success 204 "Transport successfully deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid transport ID"
// @Failure 404 {object} dto.ErrorResponse "Transport not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transports/{transportID} [delete]
// @Security BearerAuth
func (h *TransportHandler) DeactivateTransport(w http.ResponseWriter, r *http.Request) {
	transportID, err := getTransportIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeactivateTransport(r.Context(), transportID); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, transport.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to deactivate transport", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Transport deactivated", slog.Int64("transportID", transportID))
	respondJSON(w, http.StatusNoContent, nil)
}

// AssignDiary handles PUT /transports/{transportID}/diary
// @Summary Assign a transport to a diary center
// @Description Attaches a transport to the diary center whose collection route it serves.
// @Tags Transports
// @Accept json
// @Produce json
// @Param transportID path int true "Transport ID" Minimum(1)
// @Param request body dto.AssignDiaryRequest true "Diary center payload (diaryId must be positive)"
// @Success 204 "Diary center successfully assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid transport ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Transport or diary center not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transports/{transportID}/diary [put]
// @Security BearerAuth
func (h *TransportHandler) AssignDiary(w http.ResponseWriter, r *http.Request) {
	transportID, err := getTransportIDFromURL(r)
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

	if err := h.service.AssignDiary(r.Context(), transportID, req.DiaryID); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, transport.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to assign diary center", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Diary center assigned", slog.Int64("transportID", transportID), slog.Int64("diaryID", req.DiaryID))
	respondJSON(w, http.StatusNoContent, nil)
}
