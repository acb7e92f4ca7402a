package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
)

// ProfileService handles profile and settings business logic
type ProfileService struct {
	userRepo domain.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateSettingsInput contains input for updating user settings
type UpdateSettingsInput struct {
	Name              string
	Email             string
	PreferredCurrency string
}

// UpdateSettings updates name, email and preferred currency.
// An empty preferred currency keeps the current one.
func (s *ProfileService) UpdateSettings(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxTitleLength {
		return nil, domain.ErrInvalidInput
	}

	email := NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.PreferredCurrency))
	if currency == "" {
		currency = existing.PreferredCurrency
	}
	if !domain.IsSupportedCurrency(currency) {
		return nil, domain.ErrUnsupportedCurrency
	}

	return s.userRepo.UpdateSettings(ctx, userID, name, email, currency)
}
