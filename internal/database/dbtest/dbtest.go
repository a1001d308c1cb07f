// Package dbtest provides migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/tableboard/internal/database"
)

const memoryDSN = "file::memory:?_foreign_keys=on"

// New returns an empty in-memory sqlite database with every migration
// applied. It is closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.SQLite, memoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db, database.SQLite))
	return db
}
