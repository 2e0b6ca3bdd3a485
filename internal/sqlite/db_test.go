package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='preferences'").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// rerunning against an existing schema is a no-op
	require.NoError(t, db.RunMigrations())
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO preferences (key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	var value string
	require.NoError(t, db.QueryRow(`SELECT value FROM preferences WHERE key = 'k'`).Scan(&value))
	require.Equal(t, "v", value)
}
