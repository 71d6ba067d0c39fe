package repository

import (
	"context"
	"fmt"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

// LikeRepository handles the per-user like graph
type LikeRepository struct {
	store storage.Store
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(store storage.Store) *LikeRepository {
	return &LikeRepository{store: store}
}

// Get returns the like graph of a user; absent graphs are empty
func (r *LikeRepository) Get(ctx context.Context, userID string) (models.LikeGraph, error) {
	graph := models.LikeGraph{}
	if _, err := storage.GetJSON(ctx, r.store, storage.LikesKey(userID), &graph); err != nil {
		return nil, fmt.Errorf("failed to get likes: %w", err)
	}
	if graph == nil {
		graph = models.LikeGraph{}
	}
	return graph, nil
}

// Add appends the edge liker -> liked to the user's graph and returns the updated graph.
// Repeated edges are appended again.
func (r *LikeRepository) Add(ctx context.Context, userID, likerID, likedID string) (models.LikeGraph, error) {
	graph, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	graph[likerID] = append(graph[likerID], likedID)

	if err := storage.SetJSON(ctx, r.store, storage.LikesKey(userID), graph); err != nil {
		return nil, fmt.Errorf("failed to save likes: %w", err)
	}
	return graph, nil
}
