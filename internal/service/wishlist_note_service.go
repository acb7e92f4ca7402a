package service

import (
	"context"
	"unicode/utf8"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/util"
	"github.com/dafibh/wishflow/wishflow-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NoteDeletedPayload is the websocket payload for note.deleted
type NoteDeletedPayload struct {
	ID         uuid.UUID `json:"id"`
	WishItemID uuid.UUID `json:"wishItemId"`
}

// NoteService handles note business logic
type NoteService struct {
	noteRepo       domain.NoteRepository
	itemRepo       domain.WishItemRepository
	activities     *ActivityService
	eventPublisher websocket.EventPublisher
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo domain.NoteRepository, itemRepo domain.WishItemRepository, activities *ActivityService) *NoteService {
	return &NoteService{
		noteRepo:   noteRepo,
		itemRepo:   itemRepo,
		activities: activities,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *NoteService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *NoteService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// NoteView renders a note's markdown into sanitised HTML
func NoteView(note *domain.Note) *domain.NoteView {
	rendered, err := util.RenderMarkdown(note.Content)
	if err != nil {
		log.Warn().Err(err).Str("note_id", note.ID.String()).Msg("Failed to render note markdown")
	}
	return &domain.NoteView{Note: *note, ContentHTML: rendered}
}

func validateNoteContent(content string) (string, error) {
	content = util.StripTags(content)
	if content == "" {
		return "", domain.ErrNoteContentEmpty
	}
	if utf8.RuneCountInString(content) > domain.MaxNoteLength {
		return "", domain.ErrNoteContentLong
	}
	return content, nil
}

// GetNotes lists an item's notes, newest first
func (s *NoteService) GetNotes(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) ([]*domain.NoteView, error) {
	if _, err := s.itemRepo.GetByID(ctx, userID, itemID); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.NoteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, NoteView(n))
	}
	return views, nil
}

// CreateNote adds a note to an item the user owns
func (s *NoteService) CreateNote(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, content string) (*domain.NoteView, error) {
	item, err := s.itemRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	content, err = validateNoteContent(content)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Create(ctx, &domain.Note{ItemID: itemID, Content: content})
	if err != nil {
		return nil, err
	}

	view := NoteView(note)
	s.activities.Record(ctx, userID, &item.WishlistID, domain.ActivityNoteAdded, item.Title)
	s.publishEvent(userID, websocket.NoteCreated(view))
	return view, nil
}

// UpdateNote replaces a note's content
func (s *NoteService) UpdateNote(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, noteID uuid.UUID, content string) (*domain.NoteView, error) {
	if _, err := s.itemRepo.GetByID(ctx, userID, itemID); err != nil {
		return nil, err
	}

	content, err := validateNoteContent(content)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Update(ctx, itemID, noteID, content)
	if err != nil {
		return nil, err
	}
	return NoteView(note), nil
}

// DeleteNote deletes a note. The note must belong to the item and the item to the user.
func (s *NoteService) DeleteNote(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, noteID uuid.UUID) error {
	if _, err := s.itemRepo.GetByID(ctx, userID, itemID); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, itemID, noteID); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.NoteDeleted(NoteDeletedPayload{ID: noteID, WishItemID: itemID}))
	return nil
}
