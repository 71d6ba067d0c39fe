package storage

const keyPrefix = "pawnder_"

// SessionKey holds the logged-in user of one session
func SessionKey(sessionID string) string { return keyPrefix + "session_" + sessionID }

// CredentialKey holds the password hash for an email
func CredentialKey(email string) string { return keyPrefix + "credentials_" + email }

// UserKey holds a user record
func UserKey(userID string) string { return keyPrefix + "users_" + userID }

// UserDogsKey holds the dogs owned by a user
func UserDogsKey(userID string) string { return keyPrefix + "user_dogs_" + userID }

// CurrentDogKey holds the id of the user's active dog
func CurrentDogKey(userID string) string { return keyPrefix + "current_dog_" + userID }

// DogOwnerKey holds the owner id of a dog
func DogOwnerKey(dogID string) string { return keyPrefix + "dog_owner_" + dogID }

// FeedKey holds the candidate feed shown to a user
func FeedKey(userID string) string { return keyPrefix + "feed_" + userID }

// LikesKey holds the like graph of a user
func LikesKey(userID string) string { return keyPrefix + "likes_" + userID }

// MatchesKey holds the match list of a user
func MatchesKey(userID string) string { return keyPrefix + "matches_" + userID }

// MessagesKey holds the message log of a match
func MessagesKey(matchID string) string { return keyPrefix + "messages_" + matchID }
