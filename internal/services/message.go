package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pawnder-backend/internal/events"
	"pawnder-backend/internal/metrics"
	"pawnder-backend/internal/models"
	"pawnder-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MessageService handles the append-only message log of each match.
// Receivers see new messages by fetching the log again.
type MessageService struct {
	messageRepo *repository.MessageRepository
	matches     *MatchService
	publisher   EventPublisher
	locks       *keyedMutex
}

// NewMessageService creates a new message service; publisher may be nil
func NewMessageService(messageRepo *repository.MessageRepository, matches *MatchService, publisher EventPublisher) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		matches:     matches,
		publisher:   publisher,
		locks:       newKeyedMutex(),
	}
}

// Send appends a message from the user to one of their matches
func (s *MessageService) Send(ctx context.Context, user *models.User, matchID, text string) (*models.Message, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	if _, err := s.matches.GetMatch(ctx, user, matchID); err != nil {
		return nil, err
	}

	msg := models.Message{
		ID:       uuid.New().String(),
		MatchID:  matchID,
		SenderID: user.ID,
		Text:     text,
	}

	unlock := s.locks.Lock(matchID)
	msg.CreatedAt = time.Now()
	err := s.messageRepo.Append(ctx, msg)
	unlock()
	if err != nil {
		return nil, err
	}

	metrics.IncMessageSent()

	if s.publisher != nil {
		event := events.MessageSent{
			MessageID: msg.ID,
			MatchID:   msg.MatchID,
			SenderID:  msg.SenderID,
			CreatedAt: msg.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, events.SubjectMessageSent, event); err != nil {
			log.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to publish message event")
		}
	}

	return &msg, nil
}

// List returns the full ordered log of one of the user's matches
func (s *MessageService) List(ctx context.Context, user *models.User, matchID string) ([]models.Message, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	if _, err := s.matches.GetMatch(ctx, user, matchID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
