package store

import (
	"errors"

	clover "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
)

// Store wraps the document database. One file per collection; all
// cross-entity behavior (follow graph, feed assembly, cascades) lives here
// so controllers stay thin adapters.
type Store struct {
	db *clover.DB
}

// New creates a Store over an opened document database.
func New(db *clover.DB) *Store {
	return &Store{db: db}
}

func toAnySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// docList reads a list field from a document. Clover hands stored lists
// back as []interface{}.
func docList(doc *document.Document, key string) []string {
	switch v := doc.Get(key).(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// mapUpdateErr translates clover's missing-document error into the store's
// not-found kind.
func mapUpdateErr(err error) error {
	if errors.Is(err, clover.ErrDocumentNotExist) {
		return ErrNotFound
	}
	return err
}
