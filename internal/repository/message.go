package repository

import (
	"context"
	"fmt"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

// MessageRepository handles the message log of each match
type MessageRepository struct {
	store storage.Store
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(store storage.Store) *MessageRepository {
	return &MessageRepository{store: store}
}

// ListByMatch returns the full ordered log of a match
func (r *MessageRepository) ListByMatch(ctx context.Context, matchID string) ([]models.Message, error) {
	var messages []models.Message
	if _, err := storage.GetJSON(ctx, r.store, storage.MessagesKey(matchID), &messages); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Append adds a message to the end of its match's log
func (r *MessageRepository) Append(ctx context.Context, msg models.Message) error {
	messages, err := r.ListByMatch(ctx, msg.MatchID)
	if err != nil {
		return err
	}
	messages = append(messages, msg)

	if err := storage.SetJSON(ctx, r.store, storage.MessagesKey(msg.MatchID), messages); err != nil {
		return fmt.Errorf("failed to save messages: %w", err)
	}
	return nil
}
