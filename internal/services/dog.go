package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/repository"

	"github.com/google/uuid"
)

// MaxDogPhotos is the most photos one dog profile can carry
const MaxDogPhotos = 5

// DogInput holds the editable fields of a dog profile
type DogInput struct {
	Name   string   `json:"name"`
	Age    int      `json:"age"`
	Breed  string   `json:"breed"`
	Gender string   `json:"gender"`
	Bio    string   `json:"bio"`
	Photos []string `json:"photos"`
}

// DogPatch holds a partial update; nil fields are left unchanged
type DogPatch struct {
	Name   *string   `json:"name"`
	Age    *int      `json:"age"`
	Breed  *string   `json:"breed"`
	Gender *string   `json:"gender"`
	Bio    *string   `json:"bio"`
	Photos *[]string `json:"photos"`
}

// DogService handles the dog profiles owned by the session's user
type DogService struct {
	dogRepo *repository.DogRepository
	locks   *keyedMutex
}

// NewDogService creates a new dog service
func NewDogService(dogRepo *repository.DogRepository) *DogService {
	return &DogService{
		dogRepo: dogRepo,
		locks:   newKeyedMutex(),
	}
}

// List returns the user's dogs in creation order
func (s *DogService) List(ctx context.Context, user *models.User) ([]models.Dog, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	dogs, err := s.dogRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if dogs == nil {
		dogs = []models.Dog{}
	}
	return dogs, nil
}

// Create adds a dog profile; the first profile becomes the active one
func (s *DogService) Create(ctx context.Context, user *models.User, input DogInput) (*models.Dog, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	dog := models.Dog{
		ID:        uuid.New().String(),
		OwnerID:   user.ID,
		Name:      strings.TrimSpace(input.Name),
		Age:       input.Age,
		Breed:     strings.TrimSpace(input.Breed),
		Gender:    input.Gender,
		Bio:       strings.TrimSpace(input.Bio),
		Photos:    input.Photos,
		CreatedAt: time.Now(),
	}
	if err := validateDog(dog); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	dogs, err := s.dogRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	dogs = append(dogs, dog)

	if err := s.dogRepo.SaveAll(ctx, user.ID, dogs); err != nil {
		return nil, err
	}
	if err := s.dogRepo.SetOwner(ctx, dog.ID, user.ID); err != nil {
		return nil, err
	}

	if len(dogs) == 1 {
		if err := s.dogRepo.SetCurrentID(ctx, user.ID, dog.ID); err != nil {
			return nil, err
		}
	}

	return &dog, nil
}

// Update applies a partial update to one of the user's dogs
func (s *DogService) Update(ctx context.Context, user *models.User, dogID string, patch DogPatch) (*models.Dog, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	dogs, err := s.dogRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	idx := indexOfDog(dogs, dogID)
	if idx < 0 {
		return nil, ErrDogNotFound
	}

	updated := dogs[idx]
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Age != nil {
		updated.Age = *patch.Age
	}
	if patch.Breed != nil {
		updated.Breed = strings.TrimSpace(*patch.Breed)
	}
	if patch.Gender != nil {
		updated.Gender = *patch.Gender
	}
	if patch.Bio != nil {
		updated.Bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.Photos != nil {
		updated.Photos = *patch.Photos
	}
	if err := validateDog(updated); err != nil {
		return nil, err
	}

	dogs[idx] = updated
	if err := s.dogRepo.SaveAll(ctx, user.ID, dogs); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes one of the user's dogs. When it was the active dog, the first
// remaining dog becomes active, or none when the list is empty.
func (s *DogService) Delete(ctx context.Context, user *models.User, dogID string) error {
	if user == nil {
		return ErrNotLoggedIn
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	dogs, err := s.dogRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return err
	}

	idx := indexOfDog(dogs, dogID)
	if idx < 0 {
		return ErrDogNotFound
	}
	remaining := append(dogs[:idx:idx], dogs[idx+1:]...)

	if err := s.dogRepo.SaveAll(ctx, user.ID, remaining); err != nil {
		return err
	}
	if err := s.dogRepo.DeleteOwner(ctx, dogID); err != nil {
		return err
	}

	currentID, err := s.dogRepo.GetCurrentID(ctx, user.ID)
	if err != nil {
		return err
	}
	if currentID == dogID {
		next := ""
		if len(remaining) > 0 {
			next = remaining[0].ID
		}
		if err := s.dogRepo.SetCurrentID(ctx, user.ID, next); err != nil {
			return err
		}
	}
	return nil
}

// Current returns the user's active dog, or nil when there is none.
// A stale active id falls back to the first owned dog.
func (s *DogService) Current(ctx context.Context, user *models.User) (*models.Dog, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	dogs, err := s.dogRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(dogs) == 0 {
		return nil, nil
	}

	currentID, err := s.dogRepo.GetCurrentID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if idx := indexOfDog(dogs, currentID); idx >= 0 {
		return &dogs[idx], nil
	}
	return &dogs[0], nil
}

// SetCurrent makes one of the user's dogs the active one
func (s *DogService) SetCurrent(ctx context.Context, user *models.User, dogID string) (*models.Dog, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	dogs, err := s.dogRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	idx := indexOfDog(dogs, dogID)
	if idx < 0 {
		return nil, ErrDogNotFound
	}

	if err := s.dogRepo.SetCurrentID(ctx, user.ID, dogID); err != nil {
		return nil, err
	}
	return &dogs[idx], nil
}

func validateDog(dog models.Dog) error {
	var missing []string
	if dog.Name == "" {
		missing = append(missing, "name")
	}
	if dog.Age <= 0 {
		missing = append(missing, "age")
	}
	if dog.Breed == "" {
		missing = append(missing, "breed")
	}
	if dog.Bio == "" {
		missing = append(missing, "bio")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	if dog.Gender != models.GenderMale && dog.Gender != models.GenderFemale {
		return fmt.Errorf("%w: gender must be %q or %q", ErrValidation, models.GenderMale, models.GenderFemale)
	}
	if len(dog.Photos) == 0 {
		return fmt.Errorf("%w: add at least one photo", ErrValidation)
	}
	if len(dog.Photos) > MaxDogPhotos {
		return fmt.Errorf("%w: at most %d photos", ErrValidation, MaxDogPhotos)
	}
	for _, p := range dog.Photos {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: empty photo url", ErrValidation)
		}
	}
	return nil
}

func indexOfDog(dogs []models.Dog, id string) int {
	if id == "" {
		return -1
	}
	for i := range dogs {
		if dogs[i].ID == id {
			return i
		}
	}
	return -1
}
