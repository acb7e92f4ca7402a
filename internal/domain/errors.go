package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternalError = errors.New("internal error")
)

// Validation constants
const (
	MaxTitleLength        = 255
	MaxCategoryNameLength = 100
	MaxNoteLength         = 5000
	MaxDescriptionLength  = 2000
)
