package store

import (
	"strings"
	"time"

	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"travelshare/config"
	"travelshare/models"
)

// MaxCommentLen bounds comment text.
const MaxCommentLen = 100

// AddComment validates the text, snapshots the author's current username
// into the document, and inserts it. The snapshot is not refreshed if the
// author later renames.
func (s *Store) AddComment(postID, authorID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, invalid("text", "cannot be empty")
	}
	if len([]rune(text)) > MaxCommentLen {
		return models.Comment{}, invalid("text", "must be at most 100 characters")
	}

	post, err := s.GetPost(postID)
	if err != nil {
		return models.Comment{}, err
	}
	author, err := s.GetUser(authorID)
	if err != nil {
		return models.Comment{}, err
	}

	doc := document.NewDocument()
	doc.Set("post_id", postID)
	doc.Set("author_id", authorID)
	doc.Set("author_username", author.Username)
	doc.Set("text", text)
	doc.Set("created_at", time.Now())

	id, err := s.db.InsertOne(config.CommentsCollection, doc)
	if err != nil {
		return models.Comment{}, err
	}
	s.Notify(post.AuthorID, authorID, models.NotificationComment, postID, id)
	return s.GetComment(id)
}

// GetComment loads a comment by ID.
func (s *Store) GetComment(id string) (models.Comment, error) {
	doc, err := s.db.FindById(config.CommentsCollection, id)
	if err != nil {
		return models.Comment{}, err
	}
	if doc == nil {
		return models.Comment{}, ErrNotFound
	}
	return models.CommentFromDocument(doc), nil
}

// CommentsForPost returns a post's comments oldest first.
func (s *Store) CommentsForPost(postID string) ([]models.Comment, error) {
	docs, err := s.db.FindAll(q.NewQuery(config.CommentsCollection).
		Where(q.Field("post_id").Eq(postID)).
		Sort(q.SortOption{Field: "created_at", Direction: 1}))
	if err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0, len(docs))
	for _, doc := range docs {
		comments = append(comments, models.CommentFromDocument(doc))
	}
	return comments, nil
}

// DeleteComment removes a comment. Allowed for the comment author or the
// owner of the post it sits on; if the post is gone the comment author can
// still remove the orphan.
func (s *Store) DeleteComment(commentID, callerID string) error {
	comment, err := s.GetComment(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		post, err := s.GetPost(comment.PostID)
		if err != nil || post.AuthorID != callerID {
			return ErrPermission
		}
	}
	return s.db.DeleteById(config.CommentsCollection, commentID)
}
