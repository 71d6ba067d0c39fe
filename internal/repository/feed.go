package repository

import (
	"context"
	"fmt"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

// FeedRepository holds the candidate feed currently shown to each user
type FeedRepository struct {
	store storage.Store
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(store storage.Store) *FeedRepository {
	return &FeedRepository{store: store}
}

// Get returns the stored feed and whether one exists
func (r *FeedRepository) Get(ctx context.Context, userID string) ([]models.Dog, bool, error) {
	var feed []models.Dog
	found, err := storage.GetJSON(ctx, r.store, storage.FeedKey(userID), &feed)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get feed: %w", err)
	}
	return feed, found, nil
}

// Save replaces the stored feed
func (r *FeedRepository) Save(ctx context.Context, userID string, feed []models.Dog) error {
	if feed == nil {
		feed = []models.Dog{}
	}
	if err := storage.SetJSON(ctx, r.store, storage.FeedKey(userID), feed); err != nil {
		return fmt.Errorf("failed to save feed: %w", err)
	}
	return nil
}
