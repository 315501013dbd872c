package models

import (
	"time"

	"github.com/ostafen/clover/v2/document"
)

// User represents a traveler profile. The follow graph is stored as two
// mirrored ID lists on the document rather than a dedicated edge collection.
type User struct {
	ID            string    `clover:"_id" json:"id"`
	Name          string    `clover:"name" json:"name"`
	Username      string    `clover:"username" json:"username"`
	Email         string    `clover:"email" json:"email"`
	PasswordHash  string    `clover:"password_hash" json:"-"`
	BirthDate     string    `clover:"birth_date" json:"birth_date"`
	BirthCity     string    `clover:"birth_city" json:"birth_city"`
	Bio           string    `clover:"bio" json:"bio"`
	PhotoPath     string    `clover:"photo_path" json:"photo_path"`
	VisitedCities []string  `clover:"visited_cities" json:"visited_cities"`
	Following     []string  `clover:"following" json:"following"`
	Followers     []string  `clover:"followers" json:"followers"`
	CreatedAt     time.Time `clover:"created_at" json:"created_at"`
}

// UserFromDocument decodes a users-collection document.
func UserFromDocument(doc *document.Document) User {
	return User{
		ID:            doc.ObjectId(),
		Name:          docString(doc, "name"),
		Username:      docString(doc, "username"),
		Email:         docString(doc, "email"),
		PasswordHash:  docString(doc, "password_hash"),
		BirthDate:     docString(doc, "birth_date"),
		BirthCity:     docString(doc, "birth_city"),
		Bio:           docString(doc, "bio"),
		PhotoPath:     docString(doc, "photo_path"),
		VisitedCities: docStringSlice(doc, "visited_cities"),
		Following:     docStringSlice(doc, "following"),
		Followers:     docStringSlice(doc, "followers"),
		CreatedAt:     docTime(doc, "created_at"),
	}
}

// PublicUser is the projection returned on public profile endpoints.
type PublicUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Bio           string    `json:"bio"`
	PhotoPath     string    `json:"photo_path"`
	BirthCity     string    `json:"birth_city"`
	VisitedCities []string  `json:"visited_cities"`
	Following     []string  `json:"following"`
	Followers     []string  `json:"followers"`
	CreatedAt     time.Time `json:"created_at"`
}

// Public strips credentials and contact data from a user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Bio:           u.Bio,
		PhotoPath:     u.PhotoPath,
		BirthCity:     u.BirthCity,
		VisitedCities: u.VisitedCities,
		Following:     u.Following,
		Followers:     u.Followers,
		CreatedAt:     u.CreatedAt,
	}
}
