package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteContentEmpty = errors.New("note content is required")
	ErrNoteContentLong  = errors.New("note content must be 5000 characters or less")
)

// Note is a timestamped remark attached to a wish item
type Note struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"wishItemId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteRepository defines the interface for note data access.
// Lists are ordered newest first.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) (*Note, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*Note, error)
	ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]*Note, error)
	Update(ctx context.Context, itemID uuid.UUID, id uuid.UUID, content string) (*Note, error)
	Delete(ctx context.Context, itemID uuid.UUID, id uuid.UUID) error
}

// NoteView is a note with its markdown rendered to sanitised HTML
type NoteView struct {
	Note
	ContentHTML string `json:"contentHtml"`
}
