package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ShareHandler serves public wishlist views
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// GetShared godoc
// @Summary View a shared wishlist
// @Description Public wishlists are visible to anyone; private ones only to the owner
// @Tags sharing
// @Produce json
// @Param id path string true "Wishlist ID"
// @Success 200 {object} domain.SharedWishlist
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /shared/{id} [get]
func (h *ShareHandler) GetShared(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewNotFoundError(c, "Wishlist not found")
	}

	var viewer *uuid.UUID
	if userID := middleware.GetUserID(c); userID != uuid.Nil {
		viewer = &userID
	}

	shared, err := h.shareService.GetShared(c.Request().Context(), id, viewer)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWishlistNotFound):
			return NewNotFoundError(c, "Wishlist not found")
		case errors.Is(err, domain.ErrWishlistPrivate):
			return NewForbiddenError(c, "This wishlist is private")
		}
		log.Error().Err(err).Str("wishlist_id", id.String()).Msg("Failed to load shared wishlist")
		return NewInternalError(c, "Failed to load wishlist")
	}

	return c.JSON(http.StatusOK, shared)
}

// Discover godoc
// @Summary Browse public wishlists
// @Description Recently updated public wishlists with owner name and item count
// @Tags sharing
// @Produce json
// @Success 200 {array} domain.PublicWishlist
// @Router /discover [get]
func (h *ShareHandler) Discover(c echo.Context) error {
	wishlists, err := h.shareService.Discover(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list public wishlists")
		return NewInternalError(c, "Failed to load public wishlists")
	}
	if wishlists == nil {
		wishlists = []*domain.PublicWishlist{}
	}
	return c.JSON(http.StatusOK, wishlists)
}
