package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID_Success(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)
	id, pgID := newID()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id =").
		WithArgs(pgID).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(pgID, "Test User", "test@example.com", "hash", pgtype.Text{}, "EUR", pgNow(), pgNow()))

	user, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "EUR", user.PreferredCurrency)
	assert.Nil(t, user.Auth0ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email =").
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound), "expected ErrUserNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByAuth0ID(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)
	_, pgID := newID()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE auth0_id =").
		WithArgs(pgText("auth0|abc")).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(pgID, "Jo", "jo@example.com", "", pgText("auth0|abc"), "USD", pgNow(), pgNow()))

	user, err := repo.GetByAuth0ID(context.Background(), "auth0|abc")
	require.NoError(t, err)
	require.NotNil(t, user.Auth0ID)
	assert.Equal(t, "auth0|abc", *user.Auth0ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_EmailTaken(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Test", "test@example.com", "hash", pgtype.Text{}, "USD").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.User{
		Name:              "Test",
		Email:             "test@example.com",
		PasswordHash:      "hash",
		PreferredCurrency: "USD",
	})
	assert.True(t, errors.Is(err, domain.ErrEmailTaken), "expected ErrEmailTaken, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateSettings(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)
	id, pgID := newID()

	mock.ExpectQuery("UPDATE users").
		WithArgs(pgID, "New Name", "new@example.com", "KZT").
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(pgID, "New Name", "new@example.com", "hash", pgtype.Text{}, "KZT", pgNow(), pgNow()))

	user, err := repo.UpdateSettings(context.Background(), id, "New Name", "new@example.com", "KZT")
	require.NoError(t, err)
	assert.Equal(t, "KZT", user.PreferredCurrency)
	assert.NoError(t, mock.ExpectationsWereMet())
}
