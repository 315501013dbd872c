package store_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelshare/store"
)

func TestAddComment_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ana := mustRegister(t, s, "ana")
	postID := mustPost(t, s, ana, "hello")

	_, err := s.AddComment(postID, ana, "")
	_, ok := store.AsValidation(err)
	assert.True(t, ok)

	_, err = s.AddComment(postID, ana, strings.Repeat("x", 101))
	_, ok = store.AsValidation(err)
	assert.True(t, ok)

	comment, err := s.AddComment(postID, ana, strings.Repeat("x", 100))
	require.NoError(t, err)
	assert.Equal(t, postID, comment.PostID)
}

func TestAddComment_SnapshotsUsername(t *testing.T) {
	s, _ := newTestStore(t)
	ana := mustRegister(t, s, "ana")
	bob := mustRegister(t, s, "bob")
	postID := mustPost(t, s, ana, "caption")

	comment, err := s.AddComment(postID, bob, "great view")
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.AuthorUsername)
	assert.Equal(t, bob, comment.AuthorID)
}

func TestAddComment_MissingPostOrAuthor(t *testing.T) {
	s, _ := newTestStore(t)
	ana := mustRegister(t, s, "ana")
	postID := mustPost(t, s, ana, "caption")

	_, err := s.AddComment("no-such-post", ana, "hello")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.AddComment(postID, "no-such-user", "hello")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteComment_PermissionGate(t *testing.T) {
	s, _ := newTestStore(t)
	owner := mustRegister(t, s, "owner")
	commenter := mustRegister(t, s, "commenter")
	stranger := mustRegister(t, s, "stranger")
	postID := mustPost(t, s, owner, "caption")

	comment, err := s.AddComment(postID, commenter, "first")
	require.NoError(t, err)

	// A third party may not delete it.
	assert.ErrorIs(t, s.DeleteComment(comment.ID, stranger), store.ErrPermission)

	// The comment author may.
	require.NoError(t, s.DeleteComment(comment.ID, commenter))
	_, err = s.GetComment(comment.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The post owner may moderate someone else's comment.
	comment, err = s.AddComment(postID, commenter, "second")
	require.NoError(t, err)
	require.NoError(t, s.DeleteComment(comment.ID, owner))
}
