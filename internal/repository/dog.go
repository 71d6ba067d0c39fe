package repository

import (
	"context"
	"fmt"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

// DogRepository handles storage of owned dog profiles
type DogRepository struct {
	store storage.Store
}

// NewDogRepository creates a new dog repository
func NewDogRepository(store storage.Store) *DogRepository {
	return &DogRepository{store: store}
}

// ListByOwner returns the dogs owned by a user in creation order
func (r *DogRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Dog, error) {
	var dogs []models.Dog
	if _, err := storage.GetJSON(ctx, r.store, storage.UserDogsKey(ownerID), &dogs); err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}
	return dogs, nil
}

// SaveAll replaces the owned dog list of a user
func (r *DogRepository) SaveAll(ctx context.Context, ownerID string, dogs []models.Dog) error {
	if dogs == nil {
		dogs = []models.Dog{}
	}
	if err := storage.SetJSON(ctx, r.store, storage.UserDogsKey(ownerID), dogs); err != nil {
		return fmt.Errorf("failed to save dogs: %w", err)
	}
	return nil
}

// GetCurrentID returns the id of the user's active dog, or "" when none is set
func (r *DogRepository) GetCurrentID(ctx context.Context, ownerID string) (string, error) {
	var id string
	if _, err := storage.GetJSON(ctx, r.store, storage.CurrentDogKey(ownerID), &id); err != nil {
		return "", fmt.Errorf("failed to get current dog: %w", err)
	}
	return id, nil
}

// SetCurrentID records the user's active dog; an empty id clears it
func (r *DogRepository) SetCurrentID(ctx context.Context, ownerID, dogID string) error {
	if dogID == "" {
		if err := r.store.Delete(ctx, storage.CurrentDogKey(ownerID)); err != nil {
			return fmt.Errorf("failed to clear current dog: %w", err)
		}
		return nil
	}
	if err := storage.SetJSON(ctx, r.store, storage.CurrentDogKey(ownerID), dogID); err != nil {
		return fmt.Errorf("failed to set current dog: %w", err)
	}
	return nil
}

// SetOwner indexes the owner of a dog
func (r *DogRepository) SetOwner(ctx context.Context, dogID, ownerID string) error {
	if err := storage.SetJSON(ctx, r.store, storage.DogOwnerKey(dogID), ownerID); err != nil {
		return fmt.Errorf("failed to index dog owner: %w", err)
	}
	return nil
}

// GetOwner returns the owner of a dog from the index
func (r *DogRepository) GetOwner(ctx context.Context, dogID string) (string, error) {
	var ownerID string
	found, err := storage.GetJSON(ctx, r.store, storage.DogOwnerKey(dogID), &ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to get dog owner: %w", err)
	}
	if !found {
		return "", fmt.Errorf("owner of %s: %w", dogID, ErrNotFound)
	}
	return ownerID, nil
}

// DeleteOwner drops a dog from the owner index
func (r *DogRepository) DeleteOwner(ctx context.Context, dogID string) error {
	if err := r.store.Delete(ctx, storage.DogOwnerKey(dogID)); err != nil {
		return fmt.Errorf("failed to delete dog owner: %w", err)
	}
	return nil
}
