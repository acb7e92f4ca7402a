package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the work factor used for stored password hashes
	BcryptCost = 12

	// SessionTokenPrefix marks opaque session tokens so they can be told apart from JWTs
	SessionTokenPrefix = "wfs_"

	sessionTokenBytes = 32
)

var emailValidator = validator.New()

// AuthService handles registration, login and session lifecycle
type AuthService struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	sessionTTL  time.Duration
	bcryptCost  int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		bcryptCost:  BcryptCost,
	}
}

// SessionTTL returns how long a session lives without activity
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// RegisterInput contains input for creating an account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)

	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxTitleLength {
		return nil, domain.ErrInvalidInput
	}
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		PreferredCurrency: domain.DefaultCurrency,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User registered")
	return user, nil
}

// LoginInput contains credentials and client metadata for a new session
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IP        string
}

// LoginResult is a freshly created session and its user
type LoginResult struct {
	User    *domain.User
	Session *domain.Session
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password yield the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID, input.UserAgent, input.IP)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User logged in")
	return &LoginResult{User: user, Session: session}, nil
}

func (s *AuthService) createSession(ctx context.Context, userID uuid.UUID, userAgent, ip string) (*domain.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return SessionTokenPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

// IsSessionToken reports whether token looks like an opaque session token
func IsSessionToken(token string) bool {
	return strings.HasPrefix(token, SessionTokenPrefix)
}

// Authenticate resolves a session token to its user and extends the session
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	if !IsSessionToken(token) {
		return nil, nil, domain.ErrSessionNotFound
	}

	session, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.sessionRepo.Delete(ctx, token)
			return nil, nil, domain.ErrSessionNotFound
		}
		return nil, nil, err
	}

	if err := s.sessionRepo.Touch(ctx, token, s.sessionTTL); err != nil {
		// Logged out between Get and Touch
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil, err
		}
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("Failed to extend session")
	} else {
		session.ExpiresAt = time.Now().UTC().Add(s.sessionTTL)
	}

	return user, session, nil
}

// ValidateToken resolves a session token to a user ID (websocket handshake)
func (s *AuthService) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	user, _, err := s.Authenticate(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// Logout ends a single session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}

// LogoutAll ends every session of the user
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.DeleteAllForUser(ctx, userID)
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ProvisionAuth0User finds or creates the local user for an Auth0 subject.
// An existing account with the same email is linked instead of duplicated.
func (s *AuthService) ProvisionAuth0User(ctx context.Context, auth0ID, email, name string) (*domain.User, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	email = NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		log.Info().Str("user_id", existing.ID.String()).Msg("Linking Auth0 identity to existing user")
		return s.userRepo.LinkAuth0ID(ctx, existing.ID, auth0ID)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	// no password hash: these accounts can only sign in through Auth0
	user, err = s.userRepo.Create(ctx, &domain.User{
		Name:              name,
		Email:             email,
		Auth0ID:           &auth0ID,
		PreferredCurrency: domain.DefaultCurrency,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("Provisioned user from Auth0")
	return user, nil
}

// UserIDByAuth0ID returns the local user ID for an Auth0 subject
func (s *AuthService) UserIDByAuth0ID(ctx context.Context, auth0ID string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address syntax
func ValidateEmail(email string) error {
	if err := emailValidator.Var(email, "required,email,max=255"); err != nil {
		return domain.ErrEmailInvalid
	}
	return nil
}
