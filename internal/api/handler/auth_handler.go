package handler

import (
	"dairycollect/internal/api/handler/dto"
	"dairycollect/internal/config"
	"dairycollect/internal/domain/user"
	"dairycollect/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	cfg     config.Config
	service user.UserService
	logger  *slog.Logger
}

func NewAuthHandler(cfg config.Config, s user.UserService, l *slog.Logger) *AuthHandler {
	if s == nil {
		panic("user service cannot be nil")
	}
	return &AuthHandler{
		cfg:     cfg,
		service: s,
		logger:  l.With("component", "AuthHandler"),
	}
}

func getUserIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "userID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: userID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid userID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// GenerateBearerToken handles POST /auth/token
//
// @Summary Generate a JWT bearer token
// @Description Authenticates a user account by phone and password and returns a signed bearer token carrying the account's role.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Credentials payload"
// @Success 200 {object} map[string]string "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	account, err := h.service.Authenticate(r.Context(), req.Phone, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Authentication failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(account.UserID, 10),
		"role": string(account.Role),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(h.cfg.Server.Auth.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternalServer))
		return
	}

	h.logger.InfoContext(r.Context(), "Bearer token generated", slog.String("role", string(account.Role)))
	respondJSON(w, http.StatusOK, map[string]string{"token": fmt.Sprintf("Bearer %s", tokenString)})
}

// Register handles POST /auth/register
//
// @Summary Register a user account
// @Description Creates a user account with a phone number, display name, password and role. The phone number must be unique across accounts.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "Registration payload"
// @Success 201 {object} dto.UserResponse "Account successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Phone number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	account, err := h.service.Register(r.Context(), req.Phone, req.Name, req.Password, user.Role(req.Role))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to register user", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewUserResponse(account)
	h.logger.InfoContext(r.Context(), "User account created", slog.String("userID", resp.UserID), slog.String("role", resp.Role))
	respondJSON(w, http.StatusCreated, resp)
}

// GetUser handles GET /users/{userID}
//
// @Summary Retrieve user account details
// @Description Retrieves a user account by its ID. Password hashes are never returned.
// @Tags Users
// @Produce json
// @Param userID path int true "User ID" Minimum(1)
// @Success 200 {object} dto.UserResponse "Account details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{userID} [get]
// @Security BearerAuth
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	account, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewUserResponse(account))
}

// DeactivateUser handles DELETE /users/{userID}
//
// @Summary Deactivate a user account
// @Description Marks a user account as inactive. Inactive accounts can no longer authenticate.
// @Tags Users
// @Produce json
// @Param userID path int true "User ID" Minimum(1)
// @Success 204 "Account successfully deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{userID} [delete]
// @Security BearerAuth
func (h *AuthHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeactivateUser(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User account deactivated", slog.Int64("userID", userID))
	respondJSON(w, http.StatusNoContent, nil)
}
