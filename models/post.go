package models

import (
	"time"

	"github.com/ostafen/clover/v2/document"
)

// Post is a travel photo post. Likers is a set of user IDs embedded in the
// document, so a like count is always len(Likers).
type Post struct {
	ID        string    `clover:"_id" json:"id"`
	AuthorID  string    `clover:"author_id" json:"author_id"`
	Caption   string    `clover:"caption" json:"caption"`
	Location  string    `clover:"location" json:"location,omitempty"`
	Images    []string  `clover:"images" json:"images"`
	Likers    []string  `clover:"likers" json:"likers"`
	CreatedAt time.Time `clover:"created_at" json:"created_at"`
	UpdatedAt time.Time `clover:"updated_at" json:"updated_at"`
}

// PostFromDocument decodes a posts-collection document.
func PostFromDocument(doc *document.Document) Post {
	return Post{
		ID:        doc.ObjectId(),
		AuthorID:  docString(doc, "author_id"),
		Caption:   docString(doc, "caption"),
		Location:  docString(doc, "location"),
		Images:    docStringSlice(doc, "images"),
		Likers:    docStringSlice(doc, "likers"),
		CreatedAt: docTime(doc, "created_at"),
		UpdatedAt: docTime(doc, "updated_at"),
	}
}

// FeedPost is a post enriched for feed rendering: the author record plus
// the full comment list.
type FeedPost struct {
	Post
	Author   PublicUser `json:"author"`
	Comments []Comment  `json:"comments"`
}
