package models

import (
	"time"

	"github.com/ostafen/clover/v2/document"
)

// Comment is a reply on a post. AuthorUsername is a denormalized snapshot
// taken at comment time and is not refreshed when the author renames.
type Comment struct {
	ID             string    `clover:"_id" json:"id"`
	PostID         string    `clover:"post_id" json:"post_id"`
	AuthorID       string    `clover:"author_id" json:"author_id"`
	AuthorUsername string    `clover:"author_username" json:"author_username"`
	Text           string    `clover:"text" json:"text"`
	CreatedAt      time.Time `clover:"created_at" json:"created_at"`
}

// CommentFromDocument decodes a comments-collection document.
func CommentFromDocument(doc *document.Document) Comment {
	return Comment{
		ID:             doc.ObjectId(),
		PostID:         docString(doc, "post_id"),
		AuthorID:       docString(doc, "author_id"),
		AuthorUsername: docString(doc, "author_username"),
		Text:           docString(doc, "text"),
		CreatedAt:      docTime(doc, "created_at"),
	}
}
