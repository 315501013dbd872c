package store

import (
	"time"

	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"travelshare/config"
	"travelshare/models"
	"travelshare/utils"
)

// Notify records a social event for destID. Self-notifications are
// skipped; failures are logged and swallowed so the triggering request
// never fails on notification fan-out.
func (s *Store) Notify(destID, originID, kind, postID, commentID string) {
	if destID == "" || destID == originID {
		return
	}
	doc := document.NewDocument()
	doc.Set("dest_id", destID)
	doc.Set("origin_id", originID)
	doc.Set("kind", kind)
	doc.Set("post_id", postID)
	doc.Set("comment_id", commentID)
	doc.Set("created_at", time.Now())
	if _, err := s.db.InsertOne(config.NotificationsCollection, doc); err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("notification insert failed dest=%s kind=%s: %v", destID, kind, err)
	}
}

// NotificationsFor returns a user's notifications, newest first.
func (s *Store) NotificationsFor(userID string) ([]models.Notification, error) {
	docs, err := s.db.FindAll(q.NewQuery(config.NotificationsCollection).
		Where(q.Field("dest_id").Eq(userID)).
		Sort(q.SortOption{Field: "created_at", Direction: -1}))
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(docs))
	for _, doc := range docs {
		out = append(out, models.NotificationFromDocument(doc))
	}
	return out, nil
}

// SweepExpiredNotifications deletes notifications older than the retention
// window relative to now.
func (s *Store) SweepExpiredNotifications(now time.Time) error {
	cutoff := now.Add(-models.NotificationTTL)
	return s.db.Delete(q.NewQuery(config.NotificationsCollection).Where(q.Field("created_at").Lt(cutoff)))
}
