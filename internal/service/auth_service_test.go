package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (*AuthService, *testutil.MockUserRepository, *testutil.MockSessionRepository) {
	userRepo := testutil.NewMockUserRepository()
	sessionRepo := testutil.NewMockSessionRepository()
	svc := NewAuthService(userRepo, sessionRepo, time.Hour)
	svc.bcryptCost = bcrypt.MinCost
	return svc, userRepo, sessionRepo
}

func registerTestUser(t *testing.T, svc *AuthService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "testpassword",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return user
}

func TestRegister_Success(t *testing.T) {
	svc, _, sessionRepo := newTestAuthService()

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Ada  ",
		Email:    "  Ada@Example.COM ",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("Expected trimmed name 'Ada', got '%s'", user.Name)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("Expected normalised email, got '%s'", user.Email)
	}
	if user.PasswordHash == "supersecret" || user.PasswordHash == "" {
		t.Error("Expected password to be hashed")
	}
	if user.PreferredCurrency != "USD" {
		t.Errorf("Expected preferred currency USD, got %s", user.PreferredCurrency)
	}
	if len(sessionRepo.Sessions) != 0 {
		t.Error("Expected register not to create a session")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "12345678"}, domain.ErrNameRequired},
		{"missing email", RegisterInput{Name: "A", Password: "12345678"}, domain.ErrEmailRequired},
		{"invalid email", RegisterInput{Name: "A", Email: "not-an-email", Password: "12345678"}, domain.ErrEmailInvalid},
		{"short password", RegisterInput{Name: "A", Email: "a@b.co", Password: "1234567"}, domain.ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			if err != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Other",
		Email:    "TEST@example.com",
		Password: "anotherpassword",
	})
	if err != domain.ErrEmailTaken {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _, sessionRepo := newTestAuthService()
	user := registerTestUser(t, svc)

	result, err := svc.Login(context.Background(), LoginInput{Email: "Test@Example.com", Password: "testpassword", IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.User.ID != user.ID {
		t.Errorf("Expected user %s, got %s", user.ID, result.User.ID)
	}
	if !strings.HasPrefix(result.Session.Token, SessionTokenPrefix) {
		t.Errorf("Expected token with prefix %s, got %s", SessionTokenPrefix, result.Session.Token)
	}
	if _, ok := sessionRepo.Sessions[result.Session.Token]; !ok {
		t.Error("Expected session to be stored")
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, errUnknown := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "testpassword"})
	_, errWrong := svc.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "wrongpassword"})

	if errUnknown != domain.ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", errUnknown)
	}
	if errWrong != domain.ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", errWrong)
	}
}

func TestAuthenticate_AndLogout(t *testing.T) {
	svc, _, _ := newTestAuthService()
	user := registerTestUser(t, svc)

	result, err := svc.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "testpassword"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, session, err := svc.Authenticate(context.Background(), result.Session.Token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.ID != user.ID || session.UserID != user.ID {
		t.Error("Expected session to resolve to the registered user")
	}

	if err := svc.Logout(context.Background(), result.Session.Token); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// idempotent
	if err := svc.Logout(context.Background(), result.Session.Token); err != nil {
		t.Fatalf("Expected second logout to succeed, got %v", err)
	}

	_, _, err = svc.Authenticate(context.Background(), result.Session.Token)
	if err != domain.ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthenticate_RejectsForeignTokens(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, _, err := svc.Authenticate(context.Background(), "eyJhbGciOiJSUzI1NiJ9.payload.sig")
	if err != domain.ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestLogoutAll(t *testing.T) {
	svc, _, sessionRepo := newTestAuthService()
	user := registerTestUser(t, svc)

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "testpassword"}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if len(sessionRepo.Sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessionRepo.Sessions))
	}

	if err := svc.LogoutAll(context.Background(), user.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sessionRepo.Sessions) != 0 {
		t.Errorf("Expected all sessions removed, got %d", len(sessionRepo.Sessions))
	}
}

func TestProvisionAuth0User(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()

	created, err := svc.ProvisionAuth0User(context.Background(), "auth0|1", "New@Example.com", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.Name != "new" {
		t.Errorf("Expected name derived from email, got '%s'", created.Name)
	}

	again, err := svc.ProvisionAuth0User(context.Background(), "auth0|1", "new@example.com", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if again.ID != created.ID {
		t.Error("Expected the same user on second sight")
	}

	local := registerTestUser(t, svc)
	linked, err := svc.ProvisionAuth0User(context.Background(), "auth0|2", "test@example.com", "Test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if linked.ID != local.ID {
		t.Error("Expected existing account to be linked")
	}
	if len(userRepo.ByID) != 2 {
		t.Errorf("Expected 2 users, got %d", len(userRepo.ByID))
	}

	// Auth0-only accounts cannot log in with a password
	_, err = svc.Login(context.Background(), LoginInput{Email: "new@example.com", Password: ""})
	if err != domain.ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

// loggedOutOnTouch simulates a logout landing between Get and Touch
type loggedOutOnTouch struct {
	*testutil.MockSessionRepository
}

func (r loggedOutOnTouch) Touch(ctx context.Context, token string, ttl time.Duration) error {
	_ = r.Delete(ctx, token)
	return r.MockSessionRepository.Touch(ctx, token, ttl)
}

func TestAuthenticate_LogoutDuringTouch(t *testing.T) {
	svc, _, sessionRepo := newTestAuthService()
	registerTestUser(t, svc)

	result, err := svc.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "testpassword"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	svc.sessionRepo = loggedOutOnTouch{sessionRepo}
	_, _, err = svc.Authenticate(context.Background(), result.Session.Token)
	if err != domain.ErrSessionNotFound {
		t.Fatalf("Expected ErrSessionNotFound, got %v", err)
	}
	if _, ok := sessionRepo.Sessions[result.Session.Token]; ok {
		t.Fatalf("Expected session to stay deleted")
	}
}
