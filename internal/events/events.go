package events

import "time"

// Subjects double as NATS subjects and AMQP routing keys
const (
	SubjectMatchCreated = "pawnder.match.created"
	SubjectMessageSent  = "pawnder.message.sent"
)

// MatchCreated is published when a reciprocal like produces a new match
type MatchCreated struct {
	MatchID   string    `json:"match_id"`
	DogID1    string    `json:"dog_id_1"`
	DogID2    string    `json:"dog_id_2"`
	OwnerIDs  []string  `json:"owner_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageSent is published when a message is appended to a match
type MessageSent struct {
	MessageID string    `json:"message_id"`
	MatchID   string    `json:"match_id"`
	SenderID  string    `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}
