package middleware

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrInvalidJWT is returned when a bearer JWT fails validation
var ErrInvalidJWT = errors.New("invalid token")

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
	// UserKey is the context key for the authenticated user
	UserKey contextKey = "user"
	// SessionKey is the context key for the session, absent for JWT auth
	SessionKey contextKey = "session"
	// Auth0IDKey is the context key for the Auth0 subject of a JWT request
	Auth0IDKey contextKey = "auth0_id"
)

// Auth0Identity is the part of a validated Auth0 token the API uses
type Auth0Identity struct {
	Subject string
	Email   string
	Name    string
}

// JWTVerifier validates bearer JWTs
type JWTVerifier interface {
	Verify(ctx context.Context, token string) (*Auth0Identity, error)
}

// Auth0Verifier validates RS256 tokens issued by an Auth0 tenant
type Auth0Verifier struct {
	validator *validator.Validator
}

// NewAuth0Verifier creates a verifier with Auth0 configuration
func NewAuth0Verifier(domain, audience string) (*Auth0Verifier, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &Auth0Verifier{validator: jwtValidator}, nil
}

// Verify implements JWTVerifier
func (v *Auth0Verifier) Verify(ctx context.Context, token string) (*Auth0Identity, error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidJWT
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, ErrInvalidJWT
	}

	identity := &Auth0Identity{Subject: validatedClaims.RegisteredClaims.Subject}
	if custom, ok := validatedClaims.CustomClaims.(*CustomClaims); ok {
		identity.Email = custom.Email
		identity.Name = custom.Name
	}
	return identity, nil
}

// GetUserID extracts the authenticated user ID from the context
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetUser extracts the authenticated user from the context
func GetUser(c echo.Context) *domain.User {
	if user, ok := c.Request().Context().Value(UserKey).(*domain.User); ok {
		return user
	}
	return nil
}

// GetSession extracts the session from the context
func GetSession(c echo.Context) *domain.Session {
	if session, ok := c.Request().Context().Value(SessionKey).(*domain.Session); ok {
		return session
	}
	return nil
}

// GetAuth0ID extracts the Auth0 user ID from the context
func GetAuth0ID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(Auth0IDKey).(string); ok {
		return id
	}
	return ""
}

// SetAuthContext stores the authenticated user on the request context
func SetAuthContext(c echo.Context, user *domain.User, session *domain.Session) {
	ctx := context.WithValue(c.Request().Context(), UserIDKey, user.ID)
	ctx = context.WithValue(ctx, UserKey, user)
	if session != nil {
		ctx = context.WithValue(ctx, SessionKey, session)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}
