package postgres

import (
	"context"
	"testing"
	"testing/fstest"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_AppliesPendingInOrder(t *testing.T) {
	mock := newMockDB(t)
	migrations := fstest.MapFS{
		"000002_more.up.sql":   {Data: []byte("ALTER TABLE users ADD COLUMN x INT;")},
		"000001_init.up.sql":   {Data: []byte("CREATE TABLE users (id INT);")},
		"000001_init.down.sql": {Data: []byte("DROP TABLE users;")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("000001_init.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("000002_more.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("ALTER TABLE users").
		WillReturnResult(pgxmock.NewResult("ALTER", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("000002_more.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := RunMigrations(context.Background(), mock, migrations)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
