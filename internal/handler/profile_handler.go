package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles user settings requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateSettingsRequest represents the settings update body
type UpdateSettingsRequest struct {
	Name              string `json:"name" validate:"required,max=255"`
	Email             string `json:"email" validate:"required,email,max=255"`
	PreferredCurrency string `json:"preferredCurrency" validate:"omitempty,len=3"`
}

// GetSettings godoc
// @Summary Get user settings
// @Tags user
// @Produce json
// @Security SessionAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} ProblemDetails
// @Router /user/settings [get]
func (h *ProfileHandler) GetSettings(c echo.Context) error {
	userID := middleware.GetUserID(c)

	user, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get settings")
		return NewInternalError(c, "Failed to get settings")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateSettings godoc
// @Summary Update name, email and preferred currency
// @Tags user
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body UpdateSettingsRequest true "Settings"
// @Success 200 {object} domain.User
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /user/settings [patch]
func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req UpdateSettingsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.profileService.UpdateSettings(c.Request().Context(), userID, service.UpdateSettingsInput{
		Name:              req.Name,
		Email:             req.Email,
		PreferredCurrency: req.PreferredCurrency,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return NewConflictError(c, "Email is already in use")
		case errors.Is(err, domain.ErrUnsupportedCurrency):
			return NewFieldError(c, "preferredCurrency", "must be a supported currency")
		case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrInvalidInput):
			return NewFieldError(c, "name", "is required and must be at most 255 characters")
		case errors.Is(err, domain.ErrEmailRequired), errors.Is(err, domain.ErrEmailInvalid):
			return NewFieldError(c, "email", "must be a valid email address")
		case errors.Is(err, domain.ErrUserNotFound):
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update settings")
		return NewInternalError(c, "Failed to update settings")
	}

	log.Info().Str("user_id", userID.String()).Msg("Settings updated")
	return c.JSON(http.StatusOK, user)
}
