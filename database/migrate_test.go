package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabaseIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := InitializeDatabase(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitializeDatabase(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 3, count)

	for _, table := range []string{"accounts", "account_providers", "sessions", "auth_events"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := InitializeDatabase(filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO sessions (token, account_id, expires_at, created_at, updated_at)
		VALUES ('t', 'missing', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}

func TestLoadMigrationsSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_b.sql": {Data: []byte("SELECT 2;")},
		"migrations/002_a.sql": {Data: []byte("SELECT 1;")},
		"migrations/readme.md": {Data: []byte("ignored")},
	}

	migrations, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "002_a", migrations[0].Version)
	assert.Equal(t, "010_b.sql", migrations[1].Filename)
	assert.Equal(t, "SELECT 2;", migrations[1].SQL)
}

func TestLoadMigrationsEmpty(t *testing.T) {
	_, err := LoadMigrations(fstest.MapFS{})
	assert.Error(t, err)
}
