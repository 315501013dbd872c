package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelshare/config"
)

func TestOpenDatabase_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "nested")

	db, err := config.OpenDatabase(dir)
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{
		config.UsersCollection,
		config.PostsCollection,
		config.CommentsCollection,
		config.NotificationsCollection,
	} {
		has, err := db.HasCollection(name)
		require.NoError(t, err)
		assert.True(t, has, name)
	}
}

func TestOpenDatabase_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	db, err := config.OpenDatabase(dir)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an existing directory keeps the collections intact.
	db, err = config.OpenDatabase(dir)
	require.NoError(t, err)
	defer db.Close()

	has, err := db.HasCollection(config.UsersCollection)
	require.NoError(t, err)
	assert.True(t, has)
}
