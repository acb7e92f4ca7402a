package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionAuthenticator resolves session tokens and Auth0 identities to users
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error)
	ProvisionAuth0User(ctx context.Context, auth0ID, email, name string) (*domain.User, error)
}

// SessionAuthMiddleware accepts the session cookie, a bearer session token
// or, when a JWT verifier is configured, a bearer Auth0 JWT
type SessionAuthMiddleware struct {
	auth       SessionAuthenticator
	jwt        JWTVerifier
	cookieName string
}

// NewSessionAuthMiddleware creates a new SessionAuthMiddleware. jwt may be nil.
func NewSessionAuthMiddleware(auth SessionAuthenticator, jwt JWTVerifier, cookieName string) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		auth:       auth,
		jwt:        jwt,
		cookieName: cookieName,
	}
}

// Authenticate returns an Echo middleware that rejects unauthenticated requests
func (m *SessionAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, fromHeader := m.extractToken(c)
			if token == "" {
				return unauthorizedError(c, "Authentication required")
			}

			if err := m.resolve(c, token, fromHeader); err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, ErrInvalidJWT) {
					return unauthorizedError(c, "Invalid or expired session")
				}
				log.Error().Err(err).Msg("Authentication failed")
				return unauthorizedError(c, "Authentication failed")
			}

			return next(c)
		}
	}
}

// Optional returns an Echo middleware that attaches the user when a valid
// credential is present and otherwise lets the request through
func (m *SessionAuthMiddleware) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, fromHeader := m.extractToken(c); token != "" {
				if err := m.resolve(c, token, fromHeader); err != nil {
					log.Debug().Err(err).Msg("Ignoring invalid optional credential")
				}
			}
			return next(c)
		}
	}
}

// Token returns the session token the request carries, if any
func (m *SessionAuthMiddleware) Token(c echo.Context) string {
	token, _ := m.extractToken(c)
	if service.IsSessionToken(token) {
		return token
	}
	return ""
}

// CookieName returns the name of the session cookie
func (m *SessionAuthMiddleware) CookieName() string {
	return m.cookieName
}

func (m *SessionAuthMiddleware) extractToken(c echo.Context) (token string, fromHeader bool) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1]), true
		}
		// Accept session tokens without Bearer prefix (for Swagger/simple clients)
		if service.IsSessionToken(authHeader) {
			return authHeader, true
		}
	}
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, false
	}
	return "", false
}

func (m *SessionAuthMiddleware) resolve(c echo.Context, token string, fromHeader bool) error {
	ctx := c.Request().Context()

	if service.IsSessionToken(token) || !fromHeader {
		user, session, err := m.auth.Authenticate(ctx, token)
		if err != nil {
			return err
		}
		SetAuthContext(c, user, session)
		return nil
	}

	if m.jwt == nil {
		return domain.ErrSessionNotFound
	}

	identity, err := m.jwt.Verify(ctx, token)
	if err != nil {
		log.Debug().Err(err).Msg("Token validation failed")
		return ErrInvalidJWT
	}

	user, err := m.auth.ProvisionAuth0User(ctx, identity.Subject, identity.Email, identity.Name)
	if err != nil {
		return err
	}

	SetAuthContext(c, user, nil)
	c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), Auth0IDKey, identity.Subject)))
	return nil
}
