package models

import (
	"time"

	"github.com/ostafen/clover/v2/document"
)

// Notification kinds.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// NotificationTTL is how long notifications are kept before the
// maintenance sweep removes them.
const NotificationTTL = 7 * 24 * time.Hour

// Notification records a social event addressed to a user.
type Notification struct {
	ID        string    `clover:"_id" json:"id"`
	DestID    string    `clover:"dest_id" json:"dest_id"`
	OriginID  string    `clover:"origin_id" json:"origin_id"`
	Kind      string    `clover:"kind" json:"kind"`
	PostID    string    `clover:"post_id" json:"post_id,omitempty"`
	CommentID string    `clover:"comment_id" json:"comment_id,omitempty"`
	CreatedAt time.Time `clover:"created_at" json:"created_at"`
}

// NotificationFromDocument decodes a notifications-collection document.
func NotificationFromDocument(doc *document.Document) Notification {
	return Notification{
		ID:        doc.ObjectId(),
		DestID:    docString(doc, "dest_id"),
		OriginID:  docString(doc, "origin_id"),
		Kind:      docString(doc, "kind"),
		PostID:    docString(doc, "post_id"),
		CommentID: docString(doc, "comment_id"),
		CreatedAt: docTime(doc, "created_at"),
	}
}
