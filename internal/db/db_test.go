package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kanadle.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "second run is a no-op")

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	_, err = db.Exec(`INSERT INTO openings (dictionary_key, guess, bits, words, computed_at) VALUES (?,?,?,?,?)`,
		"k", "あいうえ", 1.5, 3, "2026-01-01T00:00:00Z")
	require.NoError(t, err)
}
