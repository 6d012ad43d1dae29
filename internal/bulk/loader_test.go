package bulk

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockLoader wires the loader to a mocked postgres connection
func newMockLoader(t *testing.T, batch int) (*Loader, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewLoader(gormDB, nil, batch), mock, mockDB
}

func widgetTable(rows [][]any) Table {
	return Table{
		Name:    "widgets",
		Columns: []string{"id", "name"},
		Rows:    SliceRows(rows),
	}
}

func TestLoad(t *testing.T) {
	t.Run("splits rows into batches inside one transaction", func(t *testing.T) {
		loader, mock, mockDB := newMockLoader(t, 2)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO widgets (id,name) VALUES ($1,$2),($3,$4)`)).
			WithArgs(1, "a", 2, "b").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO widgets (id,name) VALUES ($1,$2)`)).
			WithArgs(3, "c").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := loader.Load(context.Background(), []Table{
			widgetTable([][]any{{1, "a"}, {2, "b"}, {3, "c"}}),
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lazy sequences are consumed in order", func(t *testing.T) {
		loader, mock, mockDB := newMockLoader(t, 10)
		defer mockDB.Close()

		lazy := Table{
			Name:    "widgets",
			Columns: []string{"id", "name"},
			Rows: func(yield func([]any) bool) {
				for i := 1; i <= 3; i++ {
					if !yield([]any{i, "w"}) {
						return
					}
				}
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO widgets (id,name) VALUES ($1,$2),($3,$4),($5,$6)`)).
			WithArgs(1, "w", 2, "w", 3, "w").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		assert.NoError(t, loader.Load(context.Background(), []Table{lazy}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first failed batch rolls everything back", func(t *testing.T) {
		loader, mock, mockDB := newMockLoader(t, 2)
		defer mockDB.Close()

		boom := errors.New("constraint violation")
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO widgets (id,name) VALUES ($1,$2),($3,$4)`)).
			WillReturnError(boom)
		mock.ExpectRollback()

		err := loader.Load(context.Background(), []Table{
			widgetTable([][]any{{1, "a"}, {2, "b"}, {3, "c"}}),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects row width mismatch", func(t *testing.T) {
		loader, mock, mockDB := newMockLoader(t, 10)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := loader.Load(context.Background(), []Table{
			widgetTable([][]any{{1, "a", "extra"}}),
		})
		assert.Error(t, err)
	})
}

func TestSyncSequences(t *testing.T) {
	t.Run("resyncs each serial to max id", func(t *testing.T) {
		loader, mock, mockDB := newMockLoader(t, 10)
		defer mockDB.Close()

		mock.ExpectExec(regexp.QuoteMeta(
			`SELECT setval(pg_get_serial_sequence($1, $2), COALESCE(MAX(id), 0)) FROM ku_user`,
		)).WithArgs("ku_user", "id").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(
			`SELECT setval(pg_get_serial_sequence($1, $2), COALESCE(MAX(id), 0)) FROM ku_order`,
		)).WithArgs("ku_order", "id").WillReturnResult(sqlmock.NewResult(0, 1))

		err := loader.SyncSequences(context.Background(), []Sequence{
			{Table: "ku_user", Column: "id"},
			{Table: "ku_order", Column: "id"},
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		loader, mock, mockDB := newMockLoader(t, 10)
		defer mockDB.Close()

		mock.ExpectExec("SELECT setval").WillReturnError(errors.New("no such sequence"))

		err := loader.SyncSequences(context.Background(), []Sequence{{Table: "ku_user", Column: "id"}})
		assert.Error(t, err)
	})
}
