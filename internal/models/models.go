package models

import "time"

// Gender values accepted for a dog profile
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Location is where a user is based
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// User represents an account owner
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Location  Location  `json:"location"`
	PushToken *string   `json:"pushToken,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential stores the password hash for an email
type Credential struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Session binds one logged-in user to a session id
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dog represents a dog profile owned by a user
type Dog struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Breed     string    `json:"breed"`
	Gender    string    `json:"gender"`
	Bio       string    `json:"bio"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeGraph maps a liking dog id to the ids it liked, in swipe order
type LikeGraph map[string][]string

// Liked reports whether liker has at least one edge to liked
func (g LikeGraph) Liked(liker, liked string) bool {
	for _, id := range g[liker] {
		if id == liked {
			return true
		}
	}
	return false
}

// Match represents a mutual like between two dogs
type Match struct {
	ID        string    `json:"id"`
	DogID1    string    `json:"dogId1"`
	DogID2    string    `json:"dogId2"`
	CreatedAt time.Time `json:"createdAt"`
}

// Involves reports whether the dog is one side of the match
func (m Match) Involves(dogID string) bool {
	return m.DogID1 == dogID || m.DogID2 == dogID
}

// Pairs reports whether the match links a and b in either order
func (m Match) Pairs(a, b string) bool {
	return (m.DogID1 == a && m.DogID2 == b) || (m.DogID1 == b && m.DogID2 == a)
}

// Message represents a chat message inside a match
type Message struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"matchId"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
