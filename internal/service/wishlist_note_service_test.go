package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
)

func newNoteFixture() (*itemFixture, *NoteService, *domain.WishItem) {
	f := newItemFixture()
	svc := NewNoteService(f.notes, f.items, NewActivityService(f.activities))
	svc.SetEventPublisher(f.publisher)
	item := f.addItem("Headphones", "", "USD")
	return f, svc, item
}

func TestCreateNote_Success(t *testing.T) {
	f, svc, item := newNoteFixture()

	note, err := svc.CreateNote(context.Background(), f.user.ID, item.ID, "  Check the *blue* one <script>x</script> ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if note.Content != "Check the *blue* one" {
		t.Errorf("Expected sanitised content, got '%s'", note.Content)
	}
	if !strings.Contains(note.ContentHTML, "<em>blue</em>") {
		t.Errorf("Expected rendered markdown, got %s", note.ContentHTML)
	}
	if types := f.activities.Types(); len(types) != 1 || types[0] != domain.ActivityNoteAdded {
		t.Errorf("Expected note_added activity, got %v", types)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != "note.created" {
		t.Errorf("Expected note.created event, got %v", f.publisher.events)
	}
}

func TestCreateNote_Validation(t *testing.T) {
	f, svc, item := newNoteFixture()

	if _, err := svc.CreateNote(context.Background(), f.user.ID, item.ID, "   "); !errors.Is(err, domain.ErrNoteContentEmpty) {
		t.Errorf("Expected ErrNoteContentEmpty, got %v", err)
	}
	if _, err := svc.CreateNote(context.Background(), f.user.ID, item.ID, "<b></b>"); !errors.Is(err, domain.ErrNoteContentEmpty) {
		t.Errorf("Expected markup-only note to be empty, got %v", err)
	}
	if _, err := svc.CreateNote(context.Background(), f.user.ID, item.ID, strings.Repeat("é", 5001)); !errors.Is(err, domain.ErrNoteContentLong) {
		t.Errorf("Expected ErrNoteContentLong, got %v", err)
	}
	if _, err := svc.CreateNote(context.Background(), f.user.ID, item.ID, strings.Repeat("é", 5000)); err != nil {
		t.Errorf("Expected 5000 characters to be accepted, got %v", err)
	}
}

func TestCreateNote_NotOwner(t *testing.T) {
	_, svc, item := newNoteFixture()

	_, err := svc.CreateNote(context.Background(), uuid.New(), item.ID, "hi")
	if !errors.Is(err, domain.ErrWishItemNotFound) {
		t.Fatalf("Expected ErrWishItemNotFound, got %v", err)
	}
}

func TestGetNotes_NewestFirst(t *testing.T) {
	f, svc, item := newNoteFixture()
	svc.CreateNote(context.Background(), f.user.ID, item.ID, "first")
	svc.CreateNote(context.Background(), f.user.ID, item.ID, "second")

	notes, err := svc.GetNotes(context.Background(), f.user.ID, item.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(notes) != 2 || notes[0].Content != "second" {
		t.Errorf("Expected newest note first, got %v", notes)
	}
}

func TestUpdateNote(t *testing.T) {
	f, svc, item := newNoteFixture()
	note, _ := svc.CreateNote(context.Background(), f.user.ID, item.ID, "draft")

	updated, err := svc.UpdateNote(context.Background(), f.user.ID, item.ID, note.ID, "final")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Content != "final" {
		t.Errorf("Expected 'final', got '%s'", updated.Content)
	}

	other := f.addItem("Other", "", "USD")
	if _, err := svc.UpdateNote(context.Background(), f.user.ID, other.ID, note.ID, "x"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound for wrong item, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	f, svc, item := newNoteFixture()
	note, _ := svc.CreateNote(context.Background(), f.user.ID, item.ID, "bye")

	if err := svc.DeleteNote(context.Background(), f.user.ID, item.ID, note.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(f.notes.Notes) != 0 {
		t.Errorf("Expected note deleted")
	}
	if err := svc.DeleteNote(context.Background(), f.user.ID, item.ID, note.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound on second delete, got %v", err)
	}
}
