package repository

import (
	"context"
	"errors"
	"fmt"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

// ErrNotFound is returned when a record is absent from the store
var ErrNotFound = errors.New("not found")

// UserRepository handles storage of users and their credentials
type UserRepository struct {
	store storage.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create stores a user record
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := storage.SetJSON(ctx, r.store, storage.UserKey(user.ID), user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	found, err := storage.GetJSON(ctx, r.store, storage.UserKey(id), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// CreateCredential stores the password hash for an email
func (r *UserRepository) CreateCredential(ctx context.Context, cred *models.Credential) error {
	if err := storage.SetJSON(ctx, r.store, storage.CredentialKey(cred.Email), cred); err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// GetCredential retrieves the credential registered for an email
func (r *UserRepository) GetCredential(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	found, err := storage.GetJSON(ctx, r.store, storage.CredentialKey(email), &cred)
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("credential for %s: %w", email, ErrNotFound)
	}
	return &cred, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetCredential(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
