package domain

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrWishlistNotFound     = errors.New("wishlist not found")
	ErrWishlistTitleEmpty   = errors.New("wishlist title is required")
	ErrWishlistTitleTooLong = errors.New("wishlist title must be 255 characters or less")
	ErrWishlistPrivate      = errors.New("this wishlist is private")
	ErrDescriptionTooLong   = errors.New("description must be 2000 characters or less")
)

type Wishlist struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	CategoryID  int32     `json:"categoryId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WishlistWithStats includes item count for list views
type WishlistWithStats struct {
	Wishlist
	ItemCount int `json:"itemCount"`
}

// PublicWishlist is a discover feed entry
type PublicWishlist struct {
	Wishlist
	OwnerName string `json:"ownerName"`
	ItemCount int    `json:"itemCount"`
}

func (w *Wishlist) Validate() error {
	if w.Title == "" {
		return ErrWishlistTitleEmpty
	}
	if utf8.RuneCountInString(w.Title) > MaxTitleLength {
		return ErrWishlistTitleTooLong
	}
	if w.Description != nil && utf8.RuneCountInString(*w.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

type WishlistRepository interface {
	Create(ctx context.Context, wishlist *Wishlist) (*Wishlist, error)
	// GetByID returns the wishlist only when owned by userID
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*Wishlist, error)
	// GetAnyByID returns the wishlist regardless of owner (shared view)
	GetAnyByID(ctx context.Context, id uuid.UUID) (*Wishlist, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*WishlistWithStats, error)
	ListPublic(ctx context.Context) ([]*PublicWishlist, error)
	Update(ctx context.Context, wishlist *Wishlist) (*Wishlist, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

// Owner is the public view of a wishlist owner
type Owner struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SharedWishlist is a public wishlist as seen through its share link
type SharedWishlist struct {
	Wishlist
	Owner   Owner          `json:"owner"`
	IsOwner bool           `json:"isOwner"`
	Items   []*ItemDetails `json:"items"`
}
