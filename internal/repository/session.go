package repository

import (
	"context"
	"fmt"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

// SessionRepository holds the logged-in user of each session
type SessionRepository struct {
	store storage.Store
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Save stores the session record
func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	if err := storage.SetJSON(ctx, r.store, storage.SessionKey(session.ID), session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	found, err := storage.GetJSON(ctx, r.store, storage.SessionKey(id), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return &session, nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, storage.SessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
