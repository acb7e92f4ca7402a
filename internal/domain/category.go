package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound            = errors.New("category not found")
	ErrCategoryNameEmpty           = errors.New("category name is required")
	ErrCategoryNameTooLong         = errors.New("category name must be 100 characters or less")
	ErrCannotDeleteDefaultCategory = errors.New("cannot delete default category")
	ErrInvalidCategory             = errors.New("invalid category ID")
)

// Category groups wishlists. The default category is shared by everyone,
// the rest belong to a single user.
type Category struct {
	ID        int32      `json:"id"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Name      string     `json:"name"`
	IsDefault bool       `json:"isDefault"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	// GetByID returns a category visible to the user (default or own)
	GetByID(ctx context.Context, userID uuid.UUID, id int32) (*Category, error)
	GetDefault(ctx context.Context) (*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	// DeleteAndReassign moves the category's wishlists to defaultID and deletes it
	DeleteAndReassign(ctx context.Context, userID uuid.UUID, id int32, defaultID int32) error
}
