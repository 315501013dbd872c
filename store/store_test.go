package store_test

import (
	"testing"

	clover "github.com/ostafen/clover/v2"
	"github.com/stretchr/testify/require"

	"travelshare/config"
	"travelshare/store"
)

// newTestStore opens an isolated document database under a temp directory.
// The raw db handle is returned too so tests can corrupt documents when a
// scenario needs state the public API refuses to produce.
func newTestStore(t *testing.T) (*store.Store, *clover.DB) {
	t.Helper()
	db, err := config.OpenDatabase(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.New(db), db
}

func mustRegister(t *testing.T, s *store.Store, username string) string {
	t.Helper()
	user, err := s.CreateUser(store.NewUser{
		Name:     username,
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user.ID
}
