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

// WishlistHandler handles wishlist-related HTTP requests
type WishlistHandler struct {
	wishlistService *service.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// CreateWishlistRequest represents the create wishlist request body
type CreateWishlistRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	CategoryID  *int32  `json:"categoryId"`
	IsPrivate   bool    `json:"isPrivate"`
}

// UpdateWishlistRequest represents a partial wishlist update
type UpdateWishlistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *int32  `json:"categoryId"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// wishlistError maps wishlist validation errors to problem responses
func wishlistError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrWishlistNotFound):
		return NewNotFoundError(c, "Wishlist not found"), true
	case errors.Is(err, domain.ErrWishlistTitleEmpty):
		return NewFieldError(c, "title", "Title is required"), true
	case errors.Is(err, domain.ErrWishlistTitleTooLong):
		return NewFieldError(c, "title", "Title must be 255 characters or less"), true
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewFieldError(c, "description", "Description must be 2000 characters or less"), true
	case errors.Is(err, domain.ErrInvalidCategory):
		return NewFieldError(c, "categoryId", "Invalid category ID"), true
	}
	return nil, false
}

// CreateWishlist godoc
// @Summary Create a wishlist
// @Tags wishlists
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body CreateWishlistRequest true "Wishlist"
// @Success 201 {object} domain.Wishlist
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /wishlists [post]
func (h *WishlistHandler) CreateWishlist(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CreateWishlistRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	wishlist, err := h.wishlistService.CreateWishlist(c.Request().Context(), userID, service.CreateWishlistInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		if resp, ok := wishlistError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create wishlist")
		return NewInternalError(c, "Failed to create wishlist")
	}

	log.Info().Str("user_id", userID.String()).Str("wishlist_id", wishlist.ID.String()).Msg("Wishlist created")
	return c.JSON(http.StatusCreated, wishlist)
}

// GetWishlists godoc
// @Summary List wishlists
// @Description The user's wishlists, newest first, with item counts
// @Tags wishlists
// @Produce json
// @Security SessionAuth
// @Success 200 {array} domain.WishlistWithStats
// @Failure 401 {object} ProblemDetails
// @Router /wishlists [get]
func (h *WishlistHandler) GetWishlists(c echo.Context) error {
	userID := middleware.GetUserID(c)

	wishlists, err := h.wishlistService.GetWishlists(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get wishlists")
		return NewInternalError(c, "Failed to get wishlists")
	}
	if wishlists == nil {
		wishlists = []*domain.WishlistWithStats{}
	}
	return c.JSON(http.StatusOK, wishlists)
}

// GetWishlist godoc
// @Summary Get a wishlist
// @Tags wishlists
// @Produce json
// @Security SessionAuth
// @Param id path string true "Wishlist ID"
// @Success 200 {object} domain.Wishlist
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /wishlists/{id} [get]
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid wishlist ID", nil)
	}

	wishlist, err := h.wishlistService.GetWishlistByID(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrWishlistNotFound) {
			return NewNotFoundError(c, "Wishlist not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("wishlist_id", id.String()).Msg("Failed to get wishlist")
		return NewInternalError(c, "Failed to get wishlist")
	}

	return c.JSON(http.StatusOK, wishlist)
}

// UpdateWishlist godoc
// @Summary Update a wishlist
// @Description Only fields present in the body change
// @Tags wishlists
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Wishlist ID"
// @Param request body UpdateWishlistRequest true "Changes"
// @Success 200 {object} domain.Wishlist
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /wishlists/{id} [patch]
func (h *WishlistHandler) UpdateWishlist(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid wishlist ID", nil)
	}

	var req UpdateWishlistRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	wishlist, err := h.wishlistService.UpdateWishlist(c.Request().Context(), userID, id, service.UpdateWishlistInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		if resp, ok := wishlistError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("wishlist_id", id.String()).Msg("Failed to update wishlist")
		return NewInternalError(c, "Failed to update wishlist")
	}

	return c.JSON(http.StatusOK, wishlist)
}

// DeleteWishlist godoc
// @Summary Delete a wishlist
// @Description Deletes the wishlist with its items, notes and stored images
// @Tags wishlists
// @Produce json
// @Security SessionAuth
// @Param id path string true "Wishlist ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /wishlists/{id} [delete]
func (h *WishlistHandler) DeleteWishlist(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid wishlist ID", nil)
	}

	if err := h.wishlistService.DeleteWishlist(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrWishlistNotFound) {
			return NewNotFoundError(c, "Wishlist not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("wishlist_id", id.String()).Msg("Failed to delete wishlist")
		return NewInternalError(c, "Failed to delete wishlist")
	}

	log.Info().Str("user_id", userID.String()).Str("wishlist_id", id.String()).Msg("Wishlist deleted")
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
