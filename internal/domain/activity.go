package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActivityType names a user-visible event in the activity feed
type ActivityType string

const (
	ActivityWishlistCreated ActivityType = "wishlist_created"
	ActivityWishlistUpdated ActivityType = "wishlist_updated"
	ActivityItemAdded       ActivityType = "item_added"
	ActivityItemUpdated     ActivityType = "item_updated"
	ActivityItemCompleted   ActivityType = "item_completed"
	ActivityNoteAdded       ActivityType = "note_added"
)

type Activity struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"userId"`
	WishlistID    *uuid.UUID   `json:"wishlistId,omitempty"`
	WishlistTitle *string      `json:"wishlistTitle,omitempty"`
	Type          ActivityType `json:"type"`
	Title         string       `json:"title"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int32) ([]*Activity, error)
}
