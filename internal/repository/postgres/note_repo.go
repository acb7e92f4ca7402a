package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/wishflow/wishflow-backend/db/sqlc"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NoteRepository implements domain.NoteRepository using PostgreSQL
type NoteRepository struct {
	queries *sqlc.Queries
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db DB) *NoteRepository {
	return &NoteRepository{
		queries: sqlc.New(db),
	}
}

// Create creates a new note
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	created, err := r.queries.CreateNote(ctx, sqlc.CreateNoteParams{
		WishItemID: uuidToPg(note.ItemID),
		Content:    note.Content,
	})
	if err != nil {
		return nil, err
	}
	return sqlcNoteToDomain(created), nil
}

// ListByItem retrieves all notes for an item, newest first
func (r *NoteRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Note, error) {
	notes, err := r.queries.ListNotesByItem(ctx, uuidToPg(itemID))
	if err != nil {
		return nil, err
	}
	return sqlcNotesToDomain(notes), nil
}

// ListByWishlist retrieves all notes of every item in a wishlist, newest first
func (r *NoteRepository) ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]*domain.Note, error) {
	notes, err := r.queries.ListNotesByWishlist(ctx, uuidToPg(wishlistID))
	if err != nil {
		return nil, err
	}
	return sqlcNotesToDomain(notes), nil
}

// Update replaces a note's content
func (r *NoteRepository) Update(ctx context.Context, itemID uuid.UUID, id uuid.UUID, content string) (*domain.Note, error) {
	updated, err := r.queries.UpdateNote(ctx, sqlc.UpdateNoteParams{
		ID:         uuidToPg(id),
		WishItemID: uuidToPg(itemID),
		Content:    content,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return sqlcNoteToDomain(updated), nil
}

// Delete removes a note attached to the item
func (r *NoteRepository) Delete(ctx context.Context, itemID uuid.UUID, id uuid.UUID) error {
	rows, err := r.queries.DeleteNote(ctx, sqlc.DeleteNoteParams{
		ID:         uuidToPg(id),
		WishItemID: uuidToPg(itemID),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func sqlcNotesToDomain(notes []sqlc.Note) []*domain.Note {
	result := make([]*domain.Note, len(notes))
	for i, n := range notes {
		result[i] = sqlcNoteToDomain(n)
	}
	return result
}

func sqlcNoteToDomain(n sqlc.Note) *domain.Note {
	return &domain.Note{
		ID:        pgToUUID(n.ID),
		ItemID:    pgToUUID(n.WishItemID),
		Content:   n.Content,
		CreatedAt: n.CreatedAt.Time,
		UpdatedAt: n.UpdatedAt.Time,
	}
}
