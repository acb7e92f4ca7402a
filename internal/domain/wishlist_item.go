package domain

import (
	"context"
	"errors"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrWishItemNotFound      = errors.New("wish item not found")
	ErrWishItemTitleEmpty    = errors.New("wish item title is required")
	ErrWishItemTitleTooLong  = errors.New("wish item title must be 255 characters or less")
	ErrWishItemInvalidURL    = errors.New("url must be a valid http(s) URL")
	ErrWishItemNegativePrice = errors.New("price cannot be negative")
	ErrInvalidSort           = errors.New("sort must be one of: date-desc, date-asc, price-asc, price-desc")
	ErrPreviewUnavailable    = errors.New("could not fetch link preview")
)

// WishItem is a titled entry within a wishlist
type WishItem struct {
	ID          uuid.UUID        `json:"id"`
	WishlistID  uuid.UUID        `json:"wishlistId"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Currency    string           `json:"currency"`
	URL         *string          `json:"url,omitempty"`
	ImagePath   *string          `json:"-"`
	Completed   bool             `json:"completed"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// RecentItem is an item with its wishlist title and note count, used by the dashboard
type RecentItem struct {
	WishItem
	WishlistTitle string `json:"wishlistTitle"`
	NoteCount     int    `json:"noteCount"`
}

// ItemSort is the ordering applied to item lists
type ItemSort string

const (
	SortDateDesc  ItemSort = "date-desc"
	SortDateAsc   ItemSort = "date-asc"
	SortPriceAsc  ItemSort = "price-asc"
	SortPriceDesc ItemSort = "price-desc"
)

// ParseItemSort parses a sort option, defaulting to newest first
func ParseItemSort(s string) (ItemSort, error) {
	switch ItemSort(s) {
	case "":
		return SortDateDesc, nil
	case SortDateDesc, SortDateAsc, SortPriceAsc, SortPriceDesc:
		return ItemSort(s), nil
	}
	return "", ErrInvalidSort
}

func (item *WishItem) Validate() error {
	if item.Title == "" {
		return ErrWishItemTitleEmpty
	}
	if utf8.RuneCountInString(item.Title) > MaxTitleLength {
		return ErrWishItemTitleTooLong
	}
	if item.Description != nil && utf8.RuneCountInString(*item.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if item.Price != nil && item.Price.IsNegative() {
		return ErrWishItemNegativePrice
	}
	if !IsSupportedCurrency(item.Currency) {
		return ErrUnsupportedCurrency
	}
	if item.URL != nil && *item.URL != "" && !IsHTTPURL(*item.URL) {
		return ErrWishItemInvalidURL
	}
	return nil
}

// IsHTTPURL reports whether raw is an absolute http or https URL
func IsHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

type WishItemRepository interface {
	Create(ctx context.Context, item *WishItem) (*WishItem, error)
	// GetByID returns the item only when its wishlist is owned by userID
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*WishItem, error)
	ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]*WishItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*WishItem, error)
	ListRecentlyUpdated(ctx context.Context, userID uuid.UUID, limit int32) ([]*RecentItem, error)
	ListImagePathsByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]string, error)
	Update(ctx context.Context, item *WishItem) (*WishItem, error)
	SetImagePath(ctx context.Context, id uuid.UUID, imagePath *string) (*WishItem, error)
	Move(ctx context.Context, id uuid.UUID, targetWishlistID uuid.UUID) (*WishItem, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

// ImageURLs are presigned links to the stored variants of an item image
type ImageURLs struct {
	Thumbnail string `json:"thumbnailUrl"`
	Display   string `json:"displayUrl"`
	Original  string `json:"originalUrl"`
}

// ItemDetails is an item as returned by the API: with notes, image links and
// an optional price converted into the requested currency
type ItemDetails struct {
	WishItem
	Notes          []*NoteView `json:"notes"`
	Image          *ImageURLs  `json:"image,omitempty"`
	ConvertedPrice *MoneyValue `json:"convertedPrice,omitempty"`
}

// LinkPreview is metadata scraped from a product page
type LinkPreview struct {
	URL         string  `json:"url"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	SiteName    string  `json:"siteName,omitempty"`
	Price       *string `json:"price,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}
