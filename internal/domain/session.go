package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Session is a server-side login session referenced by an opaque token
type Session struct {
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"userId"`
	UserAgent string    `json:"userAgent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionRepository stores sessions with a time-to-live
type SessionRepository interface {
	Create(ctx context.Context, session *Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*Session, error)
	Touch(ctx context.Context, token string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}
