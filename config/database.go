package config

import (
	"log"
	"os"

	clover "github.com/ostafen/clover/v2"
)

// Collection names used across the application.
const (
	UsersCollection         = "users"
	PostsCollection         = "posts"
	CommentsCollection      = "comments"
	NotificationsCollection = "notifications"
)

var db *clover.DB

// InitDatabase opens the embedded document store under DataDir and makes
// sure all collections exist.
func InitDatabase() *clover.DB {
	if db != nil {
		return db
	}

	cfg := Get()
	var err error
	db, err = OpenDatabase(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open document store: %v", err)
	}
	return db
}

// OpenDatabase opens a document store at the given directory and ensures
// collections. Used directly by tests to get isolated databases.
func OpenDatabase(dir string) (*clover.DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	d, err := clover.Open(dir)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{UsersCollection, PostsCollection, CommentsCollection, NotificationsCollection} {
		has, err := d.HasCollection(name)
		if err != nil {
			_ = d.Close()
			return nil, err
		}
		if !has {
			if err := d.CreateCollection(name); err != nil {
				_ = d.Close()
				return nil, err
			}
		}
	}
	return d, nil
}

// DB provides access to the initialized document store.
func DB() *clover.DB {
	if db == nil {
		log.Fatal("database not initialized, call InitDatabase first")
	}
	return db
}
