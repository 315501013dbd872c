package store

import (
	q "github.com/ostafen/clover/v2/query"

	"travelshare/config"
)

// Counts holds collection-level totals for the stats endpoint.
type Counts struct {
	Users    int `json:"user_count"`
	Posts    int `json:"post_count"`
	Comments int `json:"comment_count"`
}

// CollectionCounts counts users, posts and comments. A failing count
// falls back to zero instead of failing the whole call.
func (s *Store) CollectionCounts() Counts {
	var c Counts
	if n, err := s.db.Count(q.NewQuery(config.UsersCollection)); err == nil {
		c.Users = n
	}
	if n, err := s.db.Count(q.NewQuery(config.PostsCollection)); err == nil {
		c.Posts = n
	}
	if n, err := s.db.Count(q.NewQuery(config.CommentsCollection)); err == nil {
		c.Comments = n
	}
	return c
}
