package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles wishlist category requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category body
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// GetCategories godoc
// @Summary List categories
// @Description The shared default category plus the user's own, by name
// @Tags categories
// @Produce json
// @Security SessionAuth
// @Success 200 {array} domain.Category
// @Failure 401 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	userID := middleware.GetUserID(c)

	categories, err := h.categoryService.List(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CreateCategoryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNameEmpty):
			return NewFieldError(c, "name", "Name is required")
		case errors.Is(err, domain.ErrCategoryNameTooLong):
			return NewFieldError(c, "name", "Name must be 100 characters or less")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Wishlists in the category move to the default category
// @Tags categories
// @Produce json
// @Security SessionAuth
// @Param id path int true "Category ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.Delete(c.Request().Context(), userID, int32(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrCannotDeleteDefaultCategory):
			return NewValidationError(c, "Cannot delete default category", nil)
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int64("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
