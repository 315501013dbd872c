package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelshare/models"
)

func TestNotifications_FanOut(t *testing.T) {
	s, _ := newTestStore(t)
	ana := mustRegister(t, s, "ana")
	bob := mustRegister(t, s, "bob")

	require.NoError(t, s.Follow(ana, bob))
	postID := mustPost(t, s, bob, "hello")
	_, err := s.ToggleLike(postID, ana)
	require.NoError(t, err)
	_, err = s.AddComment(postID, ana, "nice")
	require.NoError(t, err)

	items, err := s.NotificationsFor(bob)
	require.NoError(t, err)
	require.Len(t, items, 3)

	kinds := map[string]bool{}
	for _, n := range items {
		kinds[n.Kind] = true
		assert.Equal(t, bob, n.DestID)
		assert.Equal(t, ana, n.OriginID)
	}
	assert.True(t, kinds[models.NotificationFollow])
	assert.True(t, kinds[models.NotificationLike])
	assert.True(t, kinds[models.NotificationComment])
}

func TestNotifications_NoSelfNotification(t *testing.T) {
	s, _ := newTestStore(t)
	ana := mustRegister(t, s, "ana")
	postID := mustPost(t, s, ana, "hello")

	_, err := s.ToggleLike(postID, ana)
	require.NoError(t, err)
	_, err = s.AddComment(postID, ana, "talking to myself")
	require.NoError(t, err)

	items, err := s.NotificationsFor(ana)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNotifications_UnlikeDoesNotNotify(t *testing.T) {
	s, _ := newTestStore(t)
	ana := mustRegister(t, s, "ana")
	bob := mustRegister(t, s, "bob")
	postID := mustPost(t, s, bob, "hello")

	_, err := s.ToggleLike(postID, ana)
	require.NoError(t, err)
	_, err = s.ToggleLike(postID, ana)
	require.NoError(t, err)

	items, err := s.NotificationsFor(bob)
	require.NoError(t, err)
	assert.Len(t, items, 1, "only the like notifies, not the unlike")
}

func TestSweepExpiredNotifications(t *testing.T) {
	s, _ := newTestStore(t)
	ana := mustRegister(t, s, "ana")
	bob := mustRegister(t, s, "bob")
	require.NoError(t, s.Follow(ana, bob))

	// Six days on: still inside the retention window.
	require.NoError(t, s.SweepExpiredNotifications(time.Now().Add(6*24*time.Hour)))
	items, err := s.NotificationsFor(bob)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Eight days on: swept.
	require.NoError(t, s.SweepExpiredNotifications(time.Now().Add(8*24*time.Hour)))
	items, err = s.NotificationsFor(bob)
	require.NoError(t, err)
	assert.Empty(t, items)
}
