package store

import (
	"regexp"
	"strings"
	"time"

	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"travelshare/config"
	"travelshare/models"
	"travelshare/utils"
)

// MaxSuggestions caps the follow-candidate list on the discovery surface.
const MaxSuggestions = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,30}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// NewUser carries registration input.
type NewUser struct {
	Name      string
	Username  string
	Email     string
	Password  string
	BirthDate string
	BirthCity string
}

// CreateUser registers a new user. Username and email are unique with
// case-insensitive comparison; the lowercase forms are stored alongside the
// display values so the document store can match them with plain equality.
func (s *Store) CreateUser(nu NewUser) (models.User, error) {
	nu.Username = strings.TrimSpace(nu.Username)
	nu.Email = strings.TrimSpace(nu.Email)

	if !usernamePattern.MatchString(nu.Username) {
		return models.User{}, invalid("username", "must be 2-30 characters: letters, digits, '.', '_' or '-'")
	}
	if !emailPattern.MatchString(nu.Email) {
		return models.User{}, invalid("email", "must be a valid email address")
	}
	if len(nu.Password) < 6 || len(nu.Password) > 72 {
		return models.User{}, invalid("password", "must be 6-72 characters")
	}

	unameLower := strings.ToLower(nu.Username)
	emailLower := strings.ToLower(nu.Email)

	if doc, err := s.db.FindFirst(q.NewQuery(config.UsersCollection).Where(q.Field("username_lower").Eq(unameLower))); err != nil {
		return models.User{}, err
	} else if doc != nil {
		return models.User{}, ErrConflict
	}
	if doc, err := s.db.FindFirst(q.NewQuery(config.UsersCollection).Where(q.Field("email_lower").Eq(emailLower))); err != nil {
		return models.User{}, err
	} else if doc != nil {
		return models.User{}, ErrConflict
	}

	hash, err := utils.HashPassword(nu.Password)
	if err != nil {
		return models.User{}, err
	}

	doc := document.NewDocument()
	doc.Set("name", strings.TrimSpace(nu.Name))
	doc.Set("username", nu.Username)
	doc.Set("username_lower", unameLower)
	doc.Set("email", nu.Email)
	doc.Set("email_lower", emailLower)
	doc.Set("password_hash", hash)
	doc.Set("birth_date", nu.BirthDate)
	doc.Set("birth_city", nu.BirthCity)
	doc.Set("bio", "")
	doc.Set("photo_path", "")
	doc.Set("visited_cities", []string{})
	doc.Set("following", []string{})
	doc.Set("followers", []string{})
	doc.Set("created_at", time.Now())

	id, err := s.db.InsertOne(config.UsersCollection, doc)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUser(id)
}

// GetUser loads a user by ID.
func (s *Store) GetUser(id string) (models.User, error) {
	doc, err := s.db.FindById(config.UsersCollection, id)
	if err != nil {
		return models.User{}, err
	}
	if doc == nil {
		return models.User{}, ErrNotFound
	}
	return models.UserFromDocument(doc), nil
}

// GetUserByUsername loads a user by username, case-insensitive.
func (s *Store) GetUserByUsername(username string) (models.User, error) {
	doc, err := s.db.FindFirst(q.NewQuery(config.UsersCollection).
		Where(q.Field("username_lower").Eq(strings.ToLower(strings.TrimSpace(username)))))
	if err != nil {
		return models.User{}, err
	}
	if doc == nil {
		return models.User{}, ErrNotFound
	}
	return models.UserFromDocument(doc), nil
}

// Authenticate checks login credentials and returns the matching user.
func (s *Store) Authenticate(username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// UsersByIDs loads users in a single batched query keyed by ID.
func (s *Store) UsersByIDs(ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	docs, err := s.db.FindAll(q.NewQuery(config.UsersCollection).Where(q.Field("_id").In(toAnySlice(ids)...)))
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		u := models.UserFromDocument(doc)
		out[u.ID] = u
	}
	return out, nil
}

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	BirthDate *string
	BirthCity *string
	PhotoPath *string
}

// UpdateProfile applies targeted field updates to the user document.
func (s *Store) UpdateProfile(userID string, upd ProfileUpdate) (models.User, error) {
	if upd.Bio != nil && len([]rune(*upd.Bio)) > 250 {
		return models.User{}, invalid("bio", "must be at most 250 characters")
	}
	err := s.db.UpdateById(config.UsersCollection, userID, func(doc *document.Document) *document.Document {
		if upd.Name != nil {
			doc.Set("name", strings.TrimSpace(*upd.Name))
		}
		if upd.Bio != nil {
			doc.Set("bio", *upd.Bio)
		}
		if upd.BirthDate != nil {
			doc.Set("birth_date", *upd.BirthDate)
		}
		if upd.BirthCity != nil {
			doc.Set("birth_city", *upd.BirthCity)
		}
		if upd.PhotoPath != nil {
			doc.Set("photo_path", *upd.PhotoPath)
		}
		return doc
	})
	if err != nil {
		return models.User{}, mapUpdateErr(err)
	}
	return s.GetUser(userID)
}

// AddVisitedCity records a city on the user's visited list. Adding a city
// that is already present is a no-op.
func (s *Store) AddVisitedCity(userID, city string) error {
	city = strings.TrimSpace(city)
	if city == "" || len([]rune(city)) > 85 {
		return invalid("city", "must be 1-85 characters")
	}
	return mapUpdateErr(s.db.UpdateById(config.UsersCollection, userID, func(doc *document.Document) *document.Document {
		cities := utils.AppendUnique(docList(doc, "visited_cities"), city)
		doc.Set("visited_cities", cities)
		return doc
	}))
}

// RemoveVisitedCity removes a city; removing an absent one is a no-op.
func (s *Store) RemoveVisitedCity(userID, city string) error {
	return mapUpdateErr(s.db.UpdateById(config.UsersCollection, userID, func(doc *document.Document) *document.Document {
		doc.Set("visited_cities", utils.RemoveValue(docList(doc, "visited_cities"), strings.TrimSpace(city)))
		return doc
	}))
}

// Follow adds target to user's following list and user to target's
// follower list. The two sides are independent writes with no transaction;
// a crash between them leaves an asymmetric edge which the maintenance
// sweep repairs later. Idempotent.
func (s *Store) Follow(userID, targetID string) error {
	if userID == targetID {
		return invalid("target", "cannot follow yourself")
	}
	if _, err := s.GetUser(targetID); err != nil {
		return err
	}
	if err := s.db.UpdateById(config.UsersCollection, userID, func(doc *document.Document) *document.Document {
		doc.Set("following", utils.AppendUnique(docList(doc, "following"), targetID))
		return doc
	}); err != nil {
		return mapUpdateErr(err)
	}
	if err := s.db.UpdateById(config.UsersCollection, targetID, func(doc *document.Document) *document.Document {
		doc.Set("followers", utils.AppendUnique(docList(doc, "followers"), userID))
		return doc
	}); err != nil {
		return mapUpdateErr(err)
	}
	s.Notify(targetID, userID, models.NotificationFollow, "", "")
	return nil
}

// Unfollow performs the inverse removals. Idempotent.
func (s *Store) Unfollow(userID, targetID string) error {
	if err := s.db.UpdateById(config.UsersCollection, userID, func(doc *document.Document) *document.Document {
		doc.Set("following", utils.RemoveValue(docList(doc, "following"), targetID))
		return doc
	}); err != nil {
		return mapUpdateErr(err)
	}
	return mapUpdateErr(s.db.UpdateById(config.UsersCollection, targetID, func(doc *document.Document) *document.Document {
		doc.Set("followers", utils.RemoveValue(docList(doc, "followers"), userID))
		return doc
	}))
}

// RemoveFollower strips followerID from user's follower list and userID
// from the follower's following list, symmetric to Unfollow.
func (s *Store) RemoveFollower(userID, followerID string) error {
	if err := s.db.UpdateById(config.UsersCollection, userID, func(doc *document.Document) *document.Document {
		doc.Set("followers", utils.RemoveValue(docList(doc, "followers"), followerID))
		return doc
	}); err != nil {
		return mapUpdateErr(err)
	}
	return mapUpdateErr(s.db.UpdateById(config.UsersCollection, followerID, func(doc *document.Document) *document.Document {
		doc.Set("following", utils.RemoveValue(docList(doc, "following"), userID))
		return doc
	}))
}

// Suggestions returns up to MaxSuggestions users the given user does not
// follow yet, in insertion order with no ranking.
func (s *Store) Suggestions(userID string) ([]models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.db.FindAll(q.NewQuery(config.UsersCollection).Sort(q.SortOption{Field: "created_at", Direction: 1}))
	if err != nil {
		return nil, err
	}
	suggestions := make([]models.User, 0, MaxSuggestions)
	for _, doc := range docs {
		candidate := models.UserFromDocument(doc)
		if candidate.ID == userID || utils.Contains(user.Following, candidate.ID) {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) == MaxSuggestions {
			break
		}
	}
	return suggestions, nil
}

// DeleteAccount removes the user's posts (with their comments), every
// comment the user authored elsewhere, and finally the user document.
// References to the user left in other users' like and follow lists are
// not cleaned here; the follow side is repaired by the maintenance sweep,
// the like side stays as dangling IDs. Returns the image paths of deleted
// posts so the caller can remove the files from disk.
func (s *Store) DeleteAccount(userID string) ([]string, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	posts, err := s.PostsByAuthor(userID)
	if err != nil {
		return nil, err
	}
	var imagePaths []string
	for _, post := range posts {
		imagePaths = append(imagePaths, post.Images...)
		if err := s.db.Delete(q.NewQuery(config.CommentsCollection).Where(q.Field("post_id").Eq(post.ID))); err != nil {
			return imagePaths, err
		}
		if err := s.db.DeleteById(config.PostsCollection, post.ID); err != nil {
			return imagePaths, err
		}
	}

	if err := s.db.Delete(q.NewQuery(config.CommentsCollection).Where(q.Field("author_id").Eq(userID))); err != nil {
		return imagePaths, err
	}
	if err := s.db.Delete(q.NewQuery(config.NotificationsCollection).Where(q.Field("dest_id").Eq(userID))); err != nil {
		return imagePaths, err
	}
	return imagePaths, s.db.DeleteById(config.UsersCollection, userID)
}

// ReconcileFollowGraph repairs asymmetric follow edges. The following list
// is treated as authoritative: a missing follower-side entry is added, a
// follower-side entry with no matching following entry is dropped, and
// references to deleted users are removed from both lists. Returns the
// number of repaired user documents.
func (s *Store) ReconcileFollowGraph() (int, error) {
	docs, err := s.db.FindAll(q.NewQuery(config.UsersCollection))
	if err != nil {
		return 0, err
	}

	users := make(map[string]models.User, len(docs))
	for _, doc := range docs {
		u := models.UserFromDocument(doc)
		users[u.ID] = u
	}

	repaired := 0
	for id, u := range users {
		following := make([]string, 0, len(u.Following))
		for _, t := range u.Following {
			if _, ok := users[t]; ok {
				following = append(following, t)
			}
		}
		followers := make([]string, 0, len(u.Followers))
		for _, f := range u.Followers {
			other, ok := users[f]
			if ok && utils.Contains(other.Following, id) {
				followers = append(followers, f)
			}
		}
		for otherID, other := range users {
			if otherID != id && utils.Contains(other.Following, id) {
				followers = utils.AppendUnique(followers, otherID)
			}
		}

		if sameSet(following, u.Following) && sameSet(followers, u.Followers) {
			continue
		}
		if err := s.db.UpdateById(config.UsersCollection, id, func(doc *document.Document) *document.Document {
			doc.Set("following", following)
			doc.Set("followers", followers)
			return doc
		}); err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !utils.Contains(b, v) {
			return false
		}
	}
	return true
}
