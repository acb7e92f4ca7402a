package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRepository_CreateAndList(t *testing.T) {
	mock := newMockDB(t)
	repo := NewNoteRepository(mock)
	itemID, pgItemID := newID()
	_, pgNoteID := newID()

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs(pgItemID, "check the blue one").
		WillReturnRows(pgxmock.NewRows(noteColumns()).
			AddRow(pgNoteID, pgItemID, "check the blue one", pgNow(), pgNow()))
	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs(pgItemID).
		WillReturnRows(pgxmock.NewRows(noteColumns()).
			AddRow(pgNoteID, pgItemID, "check the blue one", pgNow(), pgNow()))

	created, err := repo.Create(context.Background(), &domain.Note{ItemID: itemID, Content: "check the blue one"})
	require.NoError(t, err)
	assert.Equal(t, itemID, created.ItemID)

	notes, err := repo.ListByItem(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_Update_NotFound(t *testing.T) {
	mock := newMockDB(t)
	repo := NewNoteRepository(mock)
	itemID, pgItemID := newID()
	id, pgID := newID()

	mock.ExpectQuery("UPDATE notes").
		WithArgs(pgID, pgItemID, "edited").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), itemID, id, "edited")
	assert.True(t, errors.Is(err, domain.ErrNoteNotFound), "expected ErrNoteNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_Delete(t *testing.T) {
	mock := newMockDB(t)
	repo := NewNoteRepository(mock)
	itemID, pgItemID := newID()
	id, pgID := newID()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(pgID, pgItemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), itemID, id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
