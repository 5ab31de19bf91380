// Package dbtest opens throwaway SQLite databases with the schema applied.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-pos-ledger/pkg/database"
	"github.com/stretchr/testify/require"
)

func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.Open(&database.Config{
		Driver:       database.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "pos.db"),
		BusyTimeout:  2 * time.Second,
		MaxOpenConns: 4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
