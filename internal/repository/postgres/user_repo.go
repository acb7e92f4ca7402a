package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/wishflow/wishflow-backend/db/sqlc"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	queries *sqlc.Queries
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		queries: sqlc.New(db),
	}
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := r.queries.GetUserByID(ctx, uuidToPg(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// GetByAuth0ID retrieves a user by their Auth0 subject
func (r *UserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	user, err := r.queries.GetUserByAuth0ID(ctx, pgtype.Text{String: auth0ID, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := r.queries.CreateUser(ctx, sqlc.CreateUserParams{
		Name:              user.Name,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Auth0ID:           stringPtrToPgText(user.Auth0ID),
		PreferredCurrency: user.PreferredCurrency,
	})
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return sqlcUserToDomain(created), nil
}

// UpdateSettings updates the profile fields a user may change
func (r *UserRepository) UpdateSettings(ctx context.Context, id uuid.UUID, name, email, preferredCurrency string) (*domain.User, error) {
	updated, err := r.queries.UpdateUserSettings(ctx, sqlc.UpdateUserSettingsParams{
		ID:                uuidToPg(id),
		Name:              name,
		Email:             email,
		PreferredCurrency: preferredCurrency,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if isPgUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return sqlcUserToDomain(updated), nil
}

// LinkAuth0ID attaches an Auth0 subject to an existing account
func (r *UserRepository) LinkAuth0ID(ctx context.Context, id uuid.UUID, auth0ID string) (*domain.User, error) {
	updated, err := r.queries.LinkUserAuth0ID(ctx, sqlc.LinkUserAuth0IDParams{
		ID:      uuidToPg(id),
		Auth0ID: pgtype.Text{String: auth0ID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(updated), nil
}

func sqlcUserToDomain(u sqlc.User) *domain.User {
	return &domain.User{
		ID:                pgToUUID(u.ID),
		Name:              u.Name,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Auth0ID:           pgTextToStringPtr(u.Auth0ID),
		PreferredCurrency: u.PreferredCurrency,
		CreatedAt:         u.CreatedAt.Time,
		UpdatedAt:         u.UpdatedAt.Time,
	}
}
