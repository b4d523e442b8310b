package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Database {
	db, err := NewTestDB()
	require.NoError(t, err)

	err = MigrateSchema(db)
	require.NoError(t, err)

	d := FromGorm(db)
	require.NoError(t, d.RunMigrations())
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSaveSnapshot_SkipsUnchangedContent(t *testing.T) {
	d := setupTestDB(t)

	saved, err := d.SaveSnapshot("prices", []byte("v1"))
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = d.SaveSnapshot("prices", []byte("v1"))
	require.NoError(t, err)
	assert.False(t, saved)

	saved, err = d.SaveSnapshot("prices", []byte("v2"))
	require.NoError(t, err)
	assert.True(t, saved)

	var count int64
	require.NoError(t, d.db.Model(&Snapshot{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestLatestSnapshot(t *testing.T) {
	d := setupTestDB(t)

	_, err := d.LatestSnapshot("prices")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	_, err = d.SaveSnapshot("prices", []byte("old"))
	require.NoError(t, err)
	_, err = d.SaveSnapshot("prices", []byte("new"))
	require.NoError(t, err)
	_, err = d.SaveSnapshot("income", []byte("other source"))
	require.NoError(t, err)

	snap, err := d.LatestSnapshot("prices")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), snap.Content)
	assert.Equal(t, 3, snap.Size)
	assert.Equal(t, checksum([]byte("new")), snap.Checksum)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestPruneSnapshots(t *testing.T) {
	d := setupTestDB(t)

	for _, content := range []string{"a", "b", "c", "d"} {
		_, err := d.SaveSnapshot("prices", []byte(content))
		require.NoError(t, err)
	}

	deleted, err := d.PruneSnapshots("prices", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	snap, err := d.LatestSnapshot("prices")
	require.NoError(t, err)
	assert.Equal(t, []byte("d"), snap.Content)

	deleted, err = d.PruneSnapshots("prices", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestNewDatabase_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshots.db")

	d, err := NewDatabase(path)
	require.NoError(t, err)
	defer d.Close()

	_, err = d.SaveSnapshot("prices", []byte("content"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
