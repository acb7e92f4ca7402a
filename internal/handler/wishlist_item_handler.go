package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// WishItemHandler handles wish item HTTP requests
type WishItemHandler struct {
	itemService    *service.WishItemService
	previewService *service.LinkPreviewService
}

// NewWishItemHandler creates a new WishItemHandler
func NewWishItemHandler(itemService *service.WishItemService, previewService *service.LinkPreviewService) *WishItemHandler {
	return &WishItemHandler{
		itemService:    itemService,
		previewService: previewService,
	}
}

// CreateItemRequest represents the create item body. Price is a decimal
// string or number.
type CreateItemRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string"`
	Currency    string           `json:"currency" validate:"omitempty,len=3"`
	URL         *string          `json:"url"`
}

// UpdateItemRequest is a partial item update. Sending "price": null clears
// the price.
type UpdateItemRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price" swaggertype:"string"`
	Currency    *string         `json:"currency"`
	URL         *string         `json:"url"`
	Completed   *bool           `json:"completed"`
}

// MoveItemRequest represents the move item body
type MoveItemRequest struct {
	WishlistID uuid.UUID `json:"wishlistId" validate:"required"`
}

// SetImageRequest carries an image as a data URL
type SetImageRequest struct {
	Image string `json:"image"`
}

// PreviewRequest represents the link preview body
type PreviewRequest struct {
	URL string `json:"url" validate:"required"`
}

// itemError maps item and wishlist errors shared by the item endpoints
func itemError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrWishItemNotFound):
		return NewNotFoundError(c, "Item not found"), true
	case errors.Is(err, domain.ErrWishlistNotFound):
		return NewNotFoundError(c, "Wishlist not found"), true
	case errors.Is(err, domain.ErrWishItemTitleEmpty):
		return NewFieldError(c, "title", "Title is required"), true
	case errors.Is(err, domain.ErrWishItemTitleTooLong):
		return NewFieldError(c, "title", "Title must be 255 characters or less"), true
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewFieldError(c, "description", "Description must be 2000 characters or less"), true
	case errors.Is(err, domain.ErrWishItemNegativePrice):
		return NewFieldError(c, "price", "Price cannot be negative"), true
	case errors.Is(err, domain.ErrWishItemInvalidURL):
		return NewFieldError(c, "url", "URL must be a valid http(s) URL"), true
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return NewFieldError(c, "currency", "Unsupported currency"), true
	case errors.Is(err, domain.ErrInvalidSort):
		return NewFieldError(c, "sort", "Sort must be one of: date-desc, date-asc, price-asc, price-desc"), true
	}
	return nil, false
}

// imageError maps upload validation and storage errors
func imageError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, service.ErrImageStorageNotConfigured):
		return NewServiceUnavailableError(c, "Image uploads are disabled (storage not configured)"), true
	case errors.Is(err, service.ErrImageTooLarge):
		return NewFieldError(c, "image", "File too large. Maximum size is 5MB"), true
	case errors.Is(err, service.ErrInvalidImageFormat):
		return NewFieldError(c, "image", "Invalid format. Supported: JPEG, PNG, WebP"), true
	case errors.Is(err, service.ErrImageTooSmall):
		return NewFieldError(c, "image", "Image too small. Minimum 50x50 pixels"), true
	case errors.Is(err, service.ErrImageDimensionsTooLarge):
		return NewFieldError(c, "image", "Image dimensions too large. Maximum 40 megapixels"), true
	case errors.Is(err, service.ErrInvalidImageData):
		return NewFieldError(c, "image", "Invalid image data"), true
	}
	return nil, false
}

// parsePrice reads the raw price field of an update. ok is false when the
// field is not a number, a numeric string or null.
func parsePrice(raw json.RawMessage) (price *decimal.Decimal, clear bool, ok bool) {
	if len(raw) == 0 {
		return nil, false, true
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, true, true
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return nil, false, false
	}
	return &d, false, true
}

// GetItems godoc
// @Summary List wishlist items
// @Description Items with notes and image links. Prices are converted into the requested or preferred currency.
// @Tags items
// @Produce json
// @Security SessionAuth
// @Param id path string true "Wishlist ID"
// @Param sort query string false "date-desc (default), date-asc, price-asc, price-desc"
// @Param currency query string false "Display currency"
// @Success 200 {array} domain.ItemDetails
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /wishlists/{id}/items [get]
func (h *WishItemHandler) GetItems(c echo.Context) error {
	userID := middleware.GetUserID(c)

	wishlistID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid wishlist ID", nil)
	}

	items, err := h.itemService.ListItems(c.Request().Context(), userID, wishlistID, service.ListItemsInput{
		Sort:     c.QueryParam("sort"),
		Currency: c.QueryParam("currency"),
	})
	if err != nil {
		if resp, ok := itemError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("wishlist_id", wishlistID.String()).Msg("Failed to list items")
		return NewInternalError(c, "Failed to list items")
	}
	if items == nil {
		items = []*domain.ItemDetails{}
	}
	return c.JSON(http.StatusOK, items)
}

// CreateItem godoc
// @Summary Create an item
// @Tags items
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Wishlist ID"
// @Param request body CreateItemRequest true "Item"
// @Success 201 {object} domain.ItemDetails
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /wishlists/{id}/items [post]
func (h *WishItemHandler) CreateItem(c echo.Context) error {
	userID := middleware.GetUserID(c)

	wishlistID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid wishlist ID", nil)
	}

	var req CreateItemRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	item, err := h.itemService.CreateItem(c.Request().Context(), userID, wishlistID, service.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		URL:         req.URL,
	})
	if err != nil {
		if resp, ok := itemError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("wishlist_id", wishlistID.String()).Msg("Failed to create item")
		return NewInternalError(c, "Failed to create item")
	}

	log.Info().Str("user_id", userID.String()).Str("item_id", item.ID.String()).Msg("Item created")
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update an item
// @Description Only fields present in the body change. A null price clears it.
// @Tags items
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Param request body UpdateItemRequest true "Changes"
// @Success 200 {object} domain.ItemDetails
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id} [patch]
func (h *WishItemHandler) UpdateItem(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	price, clearPrice, ok := parsePrice(req.Price)
	if !ok {
		return NewFieldError(c, "price", "Price must be a number")
	}

	item, err := h.itemService.UpdateItem(c.Request().Context(), userID, itemID, service.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		ClearPrice:  clearPrice,
		Currency:    req.Currency,
		URL:         req.URL,
		Completed:   req.Completed,
	})
	if err != nil {
		if resp, ok := itemError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("item_id", itemID.String()).Msg("Failed to update item")
		return NewInternalError(c, "Failed to update item")
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags items
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id} [delete]
func (h *WishItemHandler) DeleteItem(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	if err := h.itemService.DeleteItem(c.Request().Context(), userID, itemID); err != nil {
		if errors.Is(err, domain.ErrWishItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("item_id", itemID.String()).Msg("Failed to delete item")
		return NewInternalError(c, "Failed to delete item")
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// MoveItem godoc
// @Summary Move an item to another wishlist
// @Tags items
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Param request body MoveItemRequest true "Target wishlist"
// @Success 200 {object} domain.ItemDetails
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id}/move [post]
func (h *WishItemHandler) MoveItem(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req MoveItemRequest
	if err := c.Bind(&req); err != nil || req.WishlistID == uuid.Nil {
		return NewFieldError(c, "wishlistId", "Target wishlist is required")
	}

	item, err := h.itemService.MoveItem(c.Request().Context(), userID, itemID, req.WishlistID)
	if err != nil {
		if resp, ok := itemError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("item_id", itemID.String()).Msg("Failed to move item")
		return NewInternalError(c, "Failed to move item")
	}

	return c.JSON(http.StatusOK, item)
}

// readImage returns the uploaded image from a multipart "image" field or a
// JSON data URL body
func readImage(c echo.Context) ([]byte, string, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		file, err := c.FormFile("image")
		if err != nil {
			return nil, "", service.ErrInvalidImageData
		}
		if file.Size > service.MaxImageSize {
			return nil, "", service.ErrImageTooLarge
		}
		src, err := file.Open()
		if err != nil {
			return nil, "", err
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, service.MaxImageSize+1))
		if err != nil {
			return nil, "", err
		}
		return data, file.Filename, nil
	}

	var req SetImageRequest
	if err := c.Bind(&req); err != nil || req.Image == "" {
		return nil, "", service.ErrInvalidImageData
	}
	return service.DecodeDataURL(req.Image)
}

// SetImage godoc
// @Summary Set the item image
// @Description Accepts a multipart "image" file or a JSON body {"image": "data:image/...;base64,..."}
// @Tags items
// @Accept json,mpfd
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Success 200 {object} domain.ItemDetails
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /items/{id}/image [put]
func (h *WishItemHandler) SetImage(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	data, filename, err := readImage(c)
	if err != nil {
		if resp, ok := imageError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Msg("Failed to read uploaded image")
		return NewInternalError(c, "Failed to read image")
	}

	item, err := h.itemService.SetImage(c.Request().Context(), userID, itemID, data, filename)
	if err != nil {
		if resp, ok := imageError(c, err); ok {
			return resp
		}
		if resp, ok := itemError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("item_id", itemID.String()).Msg("Failed to upload image")
		return NewInternalError(c, "Failed to upload image")
	}

	log.Info().Str("user_id", userID.String()).Str("item_id", itemID.String()).Msg("Item image updated")
	return c.JSON(http.StatusOK, item)
}

// RemoveImage godoc
// @Summary Remove the item image
// @Tags items
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Success 200 {object} domain.ItemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id}/image [delete]
func (h *WishItemHandler) RemoveImage(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	item, err := h.itemService.RemoveImage(c.Request().Context(), userID, itemID)
	if err != nil {
		if resp, ok := itemError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("item_id", itemID.String()).Msg("Failed to remove image")
		return NewInternalError(c, "Failed to remove image")
	}

	return c.JSON(http.StatusOK, item)
}

// PreviewLink godoc
// @Summary Preview a product link
// @Description Scrapes OpenGraph metadata to prefill a new item
// @Tags items
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body PreviewRequest true "Product URL"
// @Success 200 {object} domain.LinkPreview
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /items/preview [post]
func (h *WishItemHandler) PreviewLink(c echo.Context) error {
	var req PreviewRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	preview, err := h.previewService.Preview(c.Request().Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWishItemInvalidURL):
			return NewFieldError(c, "url", "URL must be a valid http(s) URL")
		case errors.Is(err, domain.ErrPreviewUnavailable):
			log.Warn().Err(err).Str("url", req.URL).Msg("Link preview failed")
			return NewBadGatewayError(c, "Could not fetch link preview")
		}
		log.Error().Err(err).Msg("Failed to preview link")
		return NewInternalError(c, "Failed to preview link")
	}

	return c.JSON(http.StatusOK, preview)
}
