package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// NoteHandler handles item note HTTP requests
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// NoteRequest represents the create and update note body
type NoteRequest struct {
	Content string `json:"content"`
}

func noteError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrWishItemNotFound):
		return NewNotFoundError(c, "Item not found"), true
	case errors.Is(err, domain.ErrNoteNotFound):
		return NewNotFoundError(c, "Note not found"), true
	case errors.Is(err, domain.ErrNoteContentEmpty):
		return NewFieldError(c, "content", "Content is required"), true
	case errors.Is(err, domain.ErrNoteContentLong):
		return NewFieldError(c, "content", "Content must be 5000 characters or less"), true
	}
	return nil, false
}

// GetNotes godoc
// @Summary List item notes
// @Description Notes newest first, with rendered markdown
// @Tags notes
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Success 200 {array} domain.NoteView
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id}/notes [get]
func (h *NoteHandler) GetNotes(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	notes, err := h.noteService.GetNotes(c.Request().Context(), userID, itemID)
	if err != nil {
		if resp, ok := noteError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to get notes")
		return NewInternalError(c, "Failed to get notes")
	}
	if notes == nil {
		notes = []*domain.NoteView{}
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Add a note to an item
// @Tags notes
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Param request body NoteRequest true "Note"
// @Success 201 {object} domain.NoteView
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id}/notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), userID, itemID, req.Content)
	if err != nil {
		if resp, ok := noteError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to create note")
		return NewInternalError(c, "Failed to create note")
	}

	return c.JSON(http.StatusCreated, note)
}

// UpdateNote godoc
// @Summary Edit a note
// @Tags notes
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Param noteId path string true "Note ID"
// @Param request body NoteRequest true "Note"
// @Success 200 {object} domain.NoteView
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id}/notes/{noteId} [patch]
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}
	noteID, ok := parseUUIDParam(c, "noteId")
	if !ok {
		return NewValidationError(c, "Invalid note ID", nil)
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), userID, itemID, noteID, req.Content)
	if err != nil {
		if resp, ok := noteError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("note_id", noteID.String()).Msg("Failed to update note")
		return NewInternalError(c, "Failed to update note")
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Security SessionAuth
// @Param id path string true "Item ID"
// @Param noteId path string true "Note ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id}/notes/{noteId} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	userID := middleware.GetUserID(c)

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}
	noteID, ok := parseUUIDParam(c, "noteId")
	if !ok {
		return NewValidationError(c, "Invalid note ID", nil)
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), userID, itemID, noteID); err != nil {
		if resp, ok := noteError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("note_id", noteID.String()).Msg("Failed to delete note")
		return NewInternalError(c, "Failed to delete note")
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
