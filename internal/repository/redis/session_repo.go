package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_sessions:"
)

// storedSession is the Redis representation of a session
type storedSession struct {
	UserID    uuid.UUID `json:"userId"`
	UserAgent string    `json:"userAgent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionRepository implements domain.SessionRepository using Redis.
// Each session lives under session:<token>; user_sessions:<userID> is a set
// of the user's tokens so every session can be revoked at once.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed session repository
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Create stores a session with the given TTL
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(storedSession{
		UserID:    session.UserID,
		UserAgent: session.UserAgent,
		IP:        session.IP,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	userKey := userSessionKeyPrefix + session.UserID.String()
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.Token, data, ttl)
	pipe.SAdd(ctx, userKey, session.Token)
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis create session: %w", err)
	}
	return nil
}

// Get loads a session by token. ExpiresAt follows the key's remaining TTL so
// it stays correct after Touch.
func (r *SessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	key := sessionKeyPrefix + token
	pipe := r.client.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	data, err := getCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var s storedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	expiresAt := s.ExpiresAt
	if ttl := ttlCmd.Val(); ttl > 0 {
		expiresAt = time.Now().UTC().Add(ttl)
	}

	return &domain.Session{
		Token:     token,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IP:        s.IP,
		CreatedAt: s.CreatedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Touch slides the session expiry forward by ttl. It never rewrites the
// session, so a logout racing with Touch always wins. Sessions are always
// stored with a TTL, which EXPIRE XX requires.
func (r *SessionRepository) Touch(ctx context.Context, token string, ttl time.Duration) error {
	extended, err := r.client.ExpireXX(ctx, sessionKeyPrefix+token, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis touch session: %w", err)
	}
	if !extended {
		return domain.ErrSessionNotFound
	}

	session, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	// Plain EXPIRE never creates the set either
	if err := r.client.Expire(ctx, userSessionKeyPrefix+session.UserID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis touch user sessions: %w", err)
	}
	return nil
}

// Delete removes a single session
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	session, err := r.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+token)
	pipe.SRem(ctx, userSessionKeyPrefix+session.UserID.String(), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every session belonging to the user
func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	userKey := userSessionKeyPrefix + userID.String()
	tokens, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis list user sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKeyPrefix+t)
	}
	keys = append(keys, userKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete user sessions: %w", err)
	}
	return nil
}
