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

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Totals, completion rate, value in the display currency, recent and popular items
// @Tags dashboard
// @Produce json
// @Security SessionAuth
// @Param currency query string false "Display currency (defaults to the preferred currency)"
// @Success 200 {object} domain.DashboardSummary
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /dashboard [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), userID, c.QueryParam("currency"))
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedCurrency) {
			return NewFieldError(c, "currency", "Unsupported currency")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build dashboard")
		return NewInternalError(c, "Failed to load dashboard")
	}

	return c.JSON(http.StatusOK, summary)
}

// GetActivity godoc
// @Summary Recent activity
// @Description The user's ten most recent wishlist activities
// @Tags dashboard
// @Produce json
// @Security SessionAuth
// @Success 200 {array} domain.Activity
// @Failure 401 {object} ProblemDetails
// @Router /dashboard/activity [get]
func (h *DashboardHandler) GetActivity(c echo.Context) error {
	userID := middleware.GetUserID(c)

	activity, err := h.dashboardService.GetActivity(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load activity")
		return NewInternalError(c, "Failed to load activity")
	}
	if activity == nil {
		activity = []*domain.Activity{}
	}
	return c.JSON(http.StatusOK, activity)
}
