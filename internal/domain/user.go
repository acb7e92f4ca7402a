package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrEmailInvalid       = errors.New("email must be a valid address")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// User represents an account holder
type User struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Auth0ID           *string   `json:"-"`
	PreferredCurrency string    `json:"preferredCurrency"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByAuth0ID(ctx context.Context, auth0ID string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, name, email, preferredCurrency string) (*User, error)
	LinkAuth0ID(ctx context.Context, id uuid.UUID, auth0ID string) (*User, error)
}
