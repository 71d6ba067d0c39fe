package repository

import (
	"context"
	"fmt"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

// MatchRepository handles the per-user match list
type MatchRepository struct {
	store storage.Store
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(store storage.Store) *MatchRepository {
	return &MatchRepository{store: store}
}

// ListByUser returns the matches of a user in creation order
func (r *MatchRepository) ListByUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	if _, err := storage.GetJSON(ctx, r.store, storage.MatchesKey(userID), &matches); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// Append adds a match to the user's list
func (r *MatchRepository) Append(ctx context.Context, userID string, match models.Match) error {
	matches, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	matches = append(matches, match)

	if err := storage.SetJSON(ctx, r.store, storage.MatchesKey(userID), matches); err != nil {
		return fmt.Errorf("failed to save matches: %w", err)
	}
	return nil
}

// FindPair returns the user's match linking dogs a and b in either order
func (r *MatchRepository) FindPair(ctx context.Context, userID, a, b string) (*models.Match, error) {
	matches, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].Pairs(a, b) {
			return &matches[i], nil
		}
	}
	return nil, fmt.Errorf("match %s/%s: %w", a, b, ErrNotFound)
}

// GetByID returns one of the user's matches
func (r *MatchRepository) GetByID(ctx context.Context, userID, matchID string) (*models.Match, error) {
	matches, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].ID == matchID {
			return &matches[i], nil
		}
	}
	return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
}
