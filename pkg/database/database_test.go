package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-pos-ledger/pkg/database"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database/dbtest"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countProducts(t *testing.T, db *database.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT count(*) FROM products`))
	return n
}

const insertProduct = `INSERT INTO products (category, name, variant, quantity, price) VALUES (?, ?, ?, ?, ?)`

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := dbtest.New(t)
		err := db.WithTx(ctx, func(tx *sqlx.Tx) error {
			_, err := tx.ExecContext(ctx, insertProduct, "Shirt", "X", "M", 1, "5")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countProducts(t, db))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := dbtest.New(t)
		boom := errors.New("boom")
		err := db.WithTx(ctx, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, insertProduct, "Shirt", "X", "M", 1, "5"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, countProducts(t, db))
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		db := dbtest.New(t)
		assert.Panics(t, func() {
			_ = db.WithTx(ctx, func(tx *sqlx.Tx) error {
				_, _ = tx.ExecContext(ctx, insertProduct, "Shirt", "X", "M", 1, "5")
				panic("boom")
			})
		})
		assert.Equal(t, 0, countProducts(t, db))
	})
}

func TestClassify(t *testing.T) {
	db := dbtest.New(t)

	_, err := db.Exec(insertProduct, "Shirt", "X", "M", 1, "5")
	require.NoError(t, err)

	_, err = db.Exec(insertProduct, "Shirt", "X", "M", 3, "7")
	require.Error(t, err)
	assert.ErrorIs(t, database.Classify(err), database.ErrUniqueViolation)

	plain := errors.New("plain")
	assert.Equal(t, plain, database.Classify(plain))
	assert.NoError(t, database.Classify(nil))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, database.Migrate(db))
}

func TestParseIsolation(t *testing.T) {
	cases := map[string]sql.IsolationLevel{
		"":                sql.LevelDefault,
		"serializable":    sql.LevelSerializable,
		"READ_COMMITTED":  sql.LevelReadCommitted,
		"repeatable read": sql.LevelRepeatableRead,
	}
	for in, want := range cases {
		got, err := database.ParseIsolation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := database.ParseIsolation("snapshot")
	assert.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, database.EscapeLike(`50%_off\`))
}

func TestCasefold(t *testing.T) {
	db := dbtest.New(t)

	tests := []struct {
		in, want string
	}{
		{"CAMIÓN", "camión"},
		{"Ñandú", "ñandú"},
		{"ÀÉÎÕÜ", "àéîõü"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, database.Fold(tt.in))

			var got string
			require.NoError(t, db.Get(&got, `SELECT casefold(?)`, tt.in))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("null stays null", func(t *testing.T) {
		var got sql.NullString
		require.NoError(t, db.Get(&got, `SELECT casefold(NULL)`))
		assert.False(t, got.Valid)
	})

	assert.Equal(t, "LOWER(name)", database.FoldExpr(database.DriverPostgres, "name"))
	assert.Equal(t, "casefold(?)", database.FoldExpr(database.DriverSQLite, "?"))
}
