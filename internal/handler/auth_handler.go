package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService  *service.AuthService
	sessionAuth  *middleware.SessionAuthMiddleware
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session cookie Secure.
func NewAuthHandler(authService *service.AuthService, sessionAuth *middleware.SessionAuthMiddleware, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionAuth:  sessionAuth,
		secureCookie: secureCookie,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse wraps a user
type UserResponse struct {
	User                 *domain.User `json:"user"`
	AlreadyAuthenticated bool         `json:"alreadyAuthenticated,omitempty"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// SuccessResponse is returned by operations without a body
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Register godoc
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} UserResponse
// @Success 200 {object} UserResponse "Already signed in"
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	if user := middleware.GetUser(c); user != nil {
		return c.JSON(http.StatusOK, UserResponse{User: user, AlreadyAuthenticated: true})
	}

	var req RegisterRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return NewConflictError(c, "An account with this email already exists")
		case errors.Is(err, domain.ErrNameRequired):
			return NewFieldError(c, "name", "is required")
		case errors.Is(err, domain.ErrEmailRequired), errors.Is(err, domain.ErrEmailInvalid):
			return NewFieldError(c, "email", "must be a valid email address")
		case errors.Is(err, domain.ErrPasswordTooShort):
			return NewFieldError(c, "password", "must be at least 8 characters")
		}
		log.Error().Err(err).Msg("Failed to register user")
		return NewInternalError(c, "Failed to register")
	}

	return c.JSON(http.StatusCreated, UserResponse{User: user})
}

// Login godoc
// @Summary Sign in with email and password
// @Description Creates a session, sets the session cookie and returns the token for non-browser clients
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if user := middleware.GetUser(c); user != nil {
		return c.JSON(http.StatusOK, UserResponse{User: user, AlreadyAuthenticated: true})
	}

	var req LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid email or password")
		}
		log.Error().Err(err).Msg("Failed to log in")
		return NewInternalError(c, "Failed to log in")
	}

	h.setSessionCookie(c, result.Session.Token, h.authService.SessionTTL())

	return c.JSON(http.StatusOK, LoginResponse{
		User:      result.User,
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
	})
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.sessionAuth.Token(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			log.Error().Err(err).Str("user_id", middleware.GetUserID(c).String()).Msg("Failed to delete session")
			return NewInternalError(c, "Failed to log out")
		}
	}

	h.setSessionCookie(c, "", -1)
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// LogoutAll godoc
// @Summary End every session of the current user
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if err := h.authService.LogoutAll(c.Request().Context(), userID); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete sessions")
		return NewInternalError(c, "Failed to log out")
	}

	h.setSessionCookie(c, "", -1)
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Me godoc
// @Summary Get the current user
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.GetUser(c)
	if user == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// setSessionCookie writes the session cookie; a negative ttl clears it
func (h *AuthHandler) setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     h.sessionAuth.CookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(cookie)
}
