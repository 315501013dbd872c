package store

import (
	"time"
	"unicode"

	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"travelshare/config"
	"travelshare/models"
	"travelshare/utils"
)

// MaxCaptionLen bounds post captions.
const MaxCaptionLen = 250

// NewPost carries post creation input.
type NewPost struct {
	AuthorID string
	Caption  string
	Location string
	Images   []string
}

func validateCaption(caption string) error {
	runes := []rune(caption)
	if len(runes) > MaxCaptionLen {
		return invalid("caption", "must be at most 250 characters")
	}
	for _, r := range runes {
		if r == '\n' {
			continue
		}
		if !unicode.IsGraphic(r) {
			return invalid("caption", "contains unsupported characters")
		}
	}
	return nil
}

// CreatePost validates and inserts a new post with an empty liker set.
func (s *Store) CreatePost(np NewPost) (models.Post, error) {
	if err := validateCaption(np.Caption); err != nil {
		return models.Post{}, err
	}
	if len(np.Images) == 0 {
		return models.Post{}, invalid("images", "at least one image is required")
	}
	if _, err := s.GetUser(np.AuthorID); err != nil {
		return models.Post{}, err
	}

	now := time.Now()
	doc := document.NewDocument()
	doc.Set("author_id", np.AuthorID)
	doc.Set("caption", np.Caption)
	doc.Set("location", np.Location)
	doc.Set("images", np.Images)
	doc.Set("likers", []string{})
	doc.Set("created_at", now)
	doc.Set("updated_at", now)

	id, err := s.db.InsertOne(config.PostsCollection, doc)
	if err != nil {
		return models.Post{}, err
	}
	return s.GetPost(id)
}

// GetPost loads a post by ID.
func (s *Store) GetPost(id string) (models.Post, error) {
	doc, err := s.db.FindById(config.PostsCollection, id)
	if err != nil {
		return models.Post{}, err
	}
	if doc == nil {
		return models.Post{}, ErrNotFound
	}
	return models.PostFromDocument(doc), nil
}

// PostsByAuthor returns the author's posts, newest first.
func (s *Store) PostsByAuthor(authorID string) ([]models.Post, error) {
	docs, err := s.db.FindAll(q.NewQuery(config.PostsCollection).
		Where(q.Field("author_id").Eq(authorID)).
		Sort(q.SortOption{Field: "created_at", Direction: -1}))
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, models.PostFromDocument(doc))
	}
	return posts, nil
}

// UpdateCaption lets the author edit caption and location.
func (s *Store) UpdateCaption(postID, callerID, caption, location string) (models.Post, error) {
	if err := validateCaption(caption); err != nil {
		return models.Post{}, err
	}
	post, err := s.GetPost(postID)
	if err != nil {
		return models.Post{}, err
	}
	if post.AuthorID != callerID {
		return models.Post{}, ErrPermission
	}
	err = s.db.UpdateById(config.PostsCollection, postID, func(doc *document.Document) *document.Document {
		doc.Set("caption", caption)
		doc.Set("location", location)
		doc.Set("updated_at", time.Now())
		return doc
	})
	if err != nil {
		return models.Post{}, mapUpdateErr(err)
	}
	return s.GetPost(postID)
}

// ToggleLike flips callerID's membership in the post's liker set. The
// toggle runs inside a single per-document update, so concurrent calls can
// race on the direction of the flip but can never produce duplicates.
// Returns whether the post ends up liked.
func (s *Store) ToggleLike(postID, userID string) (bool, error) {
	var liked bool
	var authorID string
	err := s.db.UpdateById(config.PostsCollection, postID, func(doc *document.Document) *document.Document {
		likers := docList(doc, "likers")
		if utils.Contains(likers, userID) {
			likers = utils.RemoveValue(likers, userID)
			liked = false
		} else {
			likers = utils.AppendUnique(likers, userID)
			liked = true
		}
		doc.Set("likers", likers)
		authorID = docStringField(doc, "author_id")
		return doc
	})
	if err != nil {
		return false, mapUpdateErr(err)
	}
	if liked {
		s.Notify(authorID, userID, models.NotificationLike, postID, "")
	}
	return liked, nil
}

// DeletePost removes the post and every comment attached to it. Author
// only. Returns the deleted post so the caller can remove its image files.
func (s *Store) DeletePost(postID, callerID string) (models.Post, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return models.Post{}, err
	}
	if post.AuthorID != callerID {
		return models.Post{}, ErrPermission
	}
	if err := s.db.Delete(q.NewQuery(config.CommentsCollection).Where(q.Field("post_id").Eq(postID))); err != nil {
		return models.Post{}, err
	}
	if err := s.db.DeleteById(config.PostsCollection, postID); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// FeedFor assembles the home feed: the user's own posts plus posts from
// everyone followed, newest first, each carrying the author record and the
// full comment list. Commenter usernames are refreshed from a single
// batched user lookup rather than trusting the stored snapshots. The whole
// history is returned; there is no pagination.
func (s *Store) FeedFor(userID string) ([]models.FeedPost, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append([]string{userID}, user.Following...)

	docs, err := s.db.FindAll(q.NewQuery(config.PostsCollection).
		Where(q.Field("author_id").In(toAnySlice(authorIDs)...)).
		Sort(q.SortOption{Field: "created_at", Direction: -1}))
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, models.PostFromDocument(doc))
	}
	return s.enrichPosts(posts)
}

// DiscoveryFeed returns the posts of each suggested user, one author query
// per suggestion, concatenated in suggestion order without re-sorting.
func (s *Store) DiscoveryFeed(userID string) ([]models.FeedPost, error) {
	suggested, err := s.Suggestions(userID)
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	for _, candidate := range suggested {
		authored, err := s.PostsByAuthor(candidate.ID)
		if err != nil {
			return nil, err
		}
		posts = append(posts, authored...)
	}
	return s.enrichPosts(posts)
}

// enrichPosts attaches authors and comments. Users are resolved in one
// batched lookup covering both post authors and comment authors.
func (s *Store) enrichPosts(posts []models.Post) ([]models.FeedPost, error) {
	feed := make([]models.FeedPost, 0, len(posts))
	if len(posts) == 0 {
		return feed, nil
	}

	postIDs := make([]string, 0, len(posts))
	userIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		userIDs = utils.AppendUnique(userIDs, p.AuthorID)
	}

	commentDocs, err := s.db.FindAll(q.NewQuery(config.CommentsCollection).
		Where(q.Field("post_id").In(toAnySlice(postIDs)...)).
		Sort(q.SortOption{Field: "created_at", Direction: 1}))
	if err != nil {
		return nil, err
	}
	commentsByPost := make(map[string][]models.Comment)
	for _, doc := range commentDocs {
		c := models.CommentFromDocument(doc)
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
		userIDs = utils.AppendUnique(userIDs, c.AuthorID)
	}

	users, err := s.UsersByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		comments := commentsByPost[p.ID]
		for i := range comments {
			if u, ok := users[comments[i].AuthorID]; ok {
				comments[i].AuthorUsername = u.Username
			}
		}
		if comments == nil {
			comments = []models.Comment{}
		}
		feed = append(feed, models.FeedPost{
			Post:     p,
			Author:   users[p.AuthorID].Public(),
			Comments: comments,
		})
	}
	return feed, nil
}

func docStringField(doc *document.Document, key string) string {
	if v, ok := doc.Get(key).(string); ok {
		return v
	}
	return ""
}
