package handler

import (
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/domain/farmer"
	"dairycollect/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type FarmerHandler struct {
	service farmer.FarmerService
	logger  *slog.Logger
}

func NewFarmerHandler(s farmer.FarmerService, l *slog.Logger) *FarmerHandler {
	if s == nil {
		panic("farmer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &FarmerHandler{
		service: s,
		logger:  l.With("component", "FarmerHandler"),
	}
}

func getFarmerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "farmerID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: farmerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid farmerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// RegisterFarmer handles POST /farmers
// @Summary Register a new farmer
// @Description Registers a new farmer with name, phone and address. The phone number must be unique across farmers.
// @Tags Farmers
// @Accept json
// @Produce json
// @Param request body dto.RegisterFarmerRequest true "Farmer registration request"
// @Success 201 {object} dto.FarmerResponse "Farmer successfully registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Phone number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers [post]
// @Security BearerAuth
func (h *FarmerHandler) RegisterFarmer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received register farmer request")

	var req dto.RegisterFarmerRequest
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

	registered, err := h.service.RegisterFarmer(r.Context(), req.Name, req.Phone, req.Address)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, farmer.ErrDuplicatePhone) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to register farmer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewFarmerResponse(registered)
	h.logger.InfoContext(r.Context(), "Farmer registered successfully", slog.String("farmerID", resp.FarmerID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetFarmer handles GET /farmers/{farmerID}
// @Summary Retrieve farmer details
// @Description Retrieves details for a specific farmer by their ID.
// @Tags Farmers
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 200 {object} dto.FarmerResponse "Farmer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID format"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers/{farmerID} [get]
// @Security BearerAuth
func (h *FarmerHandler) GetFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get farmer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	domainFarmer, err := h.service.GetFarmer(r.Context(), farmerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, farmer.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get farmer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewFarmerResponse(domainFarmer)
	respondJSON(w, http.StatusOK, resp)
}

// ListFarmers handles GET /farmers
// @Summary List farmers
// @Description Retrieves a list of farmers. Pass `active=true` to list only active farmers.
// @Tags Farmers
// @Produce json
// @Param active query bool false "Only include active farmers" Example(true)
// @Success 200 {array} dto.FarmerResponse "List of farmers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers [get]
// @Security BearerAuth
func (h *FarmerHandler) ListFarmers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	farmers, err := h.service.ListFarmers(r.Context(), activeOnly)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list farmers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.FarmerResponse, len(farmers))
	for i, f := range farmers {
		resp[i] = dto.NewFarmerResponse(f)
	}

	h.logger.InfoContext(r.Context(), "Farmers listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// ListFarmersByPOC handles GET /farmers/poc/{pocID}
// @Summary List farmers attached to a collection point
// @Description Retrieves the farmers currently assigned to a specific collection point.
// @Tags Farmers
// @Produce json
// @Param pocID path int true "Collection point ID" Minimum(1)
// @Success 200 {array} dto.FarmerResponse "List of farmers"
// @Failure 400 {object} dto.ErrorResponse "Invalid collection point ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers/poc/{pocID} [get]
// @Security BearerAuth
func (h *FarmerHandler) ListFarmersByPOC(w http.ResponseWriter, r *http.Request) {
	pocID, err := getPOCIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get POC ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	farmers, err := h.service.ListFarmersByPOC(r.Context(), pocID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list farmers by POC", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.FarmerResponse, len(farmers))
	for i, f := range farmers {
		resp[i] = dto.NewFarmerResponse(f)
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateFarmer handles PUT /farmers/{farmerID}
// @Summary Update farmer details
// @Description Replaces the name, phone and address of a specific farmer.
// @Tags Farmers
// @Accept json
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Param request body dto.UpdateFarmerRequest true "Updated farmer payload"
// @Success 204 "Farmer successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 409 {object} dto.ErrorResponse "Phone number already registered to another farmer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers/{farmerID} [put]
// @Security BearerAuth
func (h *FarmerHandler) UpdateFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get farmer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.UpdateFarmerRequest
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

	err = h.service.UpdateFarmer(r.Context(), farmerID, req.Name, req.Phone, req.Address)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, farmer.ErrNotFound) && !errors.Is(err, farmer.ErrDuplicatePhone) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update farmer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Farmer updated successfully", slog.Int64("farmerID", farmerID))
	respondJSON(w, http.StatusNoContent, nil)
}

// AssignPOC handles PUT /farmers/{farmerID}/poc
// @Summary Assign a farmer to a collection point
// @Description Attaches a farmer to the given collection point for milk intake.
// @Tags Farmers
// @Accept json
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Param request body dto.AssignPOCRequest true "Collection point payload (pocId must be positive)"
// @Success 204 "Collection point successfully assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Farmer or collection point not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers/{farmerID}/poc [put]
// @Security BearerAuth
func (h *FarmerHandler) AssignPOC(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get farmer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.AssignPOCRequest
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

	err = h.service.AssignPOC(r.Context(), farmerID, req.POCID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, farmer.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to assign collection point", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Collection point assigned successfully", slog.Int64("farmerID", farmerID), slog.Int64("pocID", req.POCID))
	respondJSON(w, http.StatusNoContent, nil)
}

// DeactivateFarmer handles DELETE /farmers/{farmerID}
// @Summary Deactivate a farmer
// @Description Marks a farmer account as inactive. Inactive farmers cannot submit milk.
// @Tags Farmers
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 204 "Farmer successfully deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers/{farmerID} [delete]
// @Security BearerAuth
func (h *FarmerHandler) DeactivateFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get farmer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	err = h.service.DeactivateFarmer(r.Context(), farmerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, farmer.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to deactivate farmer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Farmer deactivated successfully", slog.Int64("farmerID", farmerID))
	respondJSON(w, http.StatusNoContent, nil)
}

// ReactivateFarmer handles PUT /farmers/{farmerID}/reactivate
// @Summary Reactivate a farmer
// @Description Marks a previously deactivated farmer account as active again.
// @Tags Farmers
// @Produce json
// @Param farmerID path int true "Farmer ID" Minimum(1)
// @Success 204 "Farmer successfully reactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid farmer ID"
// @Failure 404 {object} dto.ErrorResponse "Farmer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /farmers/{farmerID}/reactivate [put]
// @Security BearerAuth
func (h *FarmerHandler) ReactivateFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, err := getFarmerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get farmer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	err = h.service.ReactivateFarmer(r.Context(), farmerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, farmer.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to reactivate farmer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Farmer reactivated successfully", slog.Int64("farmerID", farmerID))
	respondJSON(w, http.StatusNoContent, nil)
}
