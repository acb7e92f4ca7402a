package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func pgNow() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), Valid: true}
}

func pgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "auth0_id", "preferred_currency", "created_at", "updated_at"}
}

func wishlistColumns() []string {
	return []string{"id", "user_id", "category_id", "title", "description", "is_private", "created_at", "updated_at"}
}

func wishItemColumns() []string {
	return []string{"id", "wishlist_id", "title", "description", "price", "currency", "url", "image_path", "completed", "created_at", "updated_at"}
}

func noteColumns() []string {
	return []string{"id", "wish_item_id", "content", "created_at", "updated_at"}
}

func newID() (uuid.UUID, pgtype.UUID) {
	id := uuid.New()
	return id, uuidToPg(id)
}
