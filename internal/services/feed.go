package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/repository"
)

var candidateBreeds = []string{
	"Labrador Retriever", "German Shepherd", "Golden Retriever",
	"Bulldog", "Beagle", "Poodle", "Rottweiler", "Yorkshire Terrier",
	"Boxer", "Dachshund", "Shih Tzu", "Siberian Husky",
}

var candidateBios = []string{
	"Loves long walks and playing fetch!",
	"Friendly with everyone, especially kids",
	"Enjoys swimming and outdoor adventures",
	"Very energetic and playful",
	"Calm and well-behaved, great with other dogs",
	"A bit shy at first, but warms up quickly",
	"Loves belly rubs and treats",
	"Very loyal and protective",
}

// FeedService generates and tracks the synthetic candidates shown for swiping
type FeedService struct {
	feedRepo *repository.FeedRepository
	dogRepo  *repository.DogRepository
	size     int
	locks    *keyedMutex

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewFeedService creates a feed service producing size candidates per feed.
// A nil rng uses a randomly seeded source.
func NewFeedService(feedRepo *repository.FeedRepository, dogRepo *repository.DogRepository, size int, rng *rand.Rand) *FeedService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FeedService{
		feedRepo: feedRepo,
		dogRepo:  dogRepo,
		size:     size,
		locks:    newKeyedMutex(),
		rng:      rng,
	}
}

// Generate builds a fresh list of candidates, leaving out any id in owned
func (s *FeedService) Generate(owned map[string]bool) []models.Dog {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	now := time.Now()
	feed := make([]models.Dog, 0, s.size)
	for i := 1; i <= s.size; i++ {
		id := fmt.Sprintf("mock-dog-%d", i)
		if owned[id] {
			continue
		}

		gender := models.GenderFemale
		if s.rng.Float64() > 0.5 {
			gender = models.GenderMale
		}

		feed = append(feed, models.Dog{
			ID:        id,
			OwnerID:   fmt.Sprintf("mock-owner-%d", i),
			Name:      fmt.Sprintf("Dog %d", i),
			Age:       s.rng.IntN(15) + 1,
			Breed:     candidateBreeds[s.rng.IntN(len(candidateBreeds))],
			Gender:    gender,
			Bio:       candidateBios[s.rng.IntN(len(candidateBios))],
			Photos:    []string{fmt.Sprintf("https://source.unsplash.com/featured/300x400?dog,puppy&sig=%d", i-1)},
			CreatedAt: now,
		})
	}
	return feed
}

// Feed returns the user's current feed, generating one when none is stored
func (s *FeedService) Feed(ctx context.Context, user *models.User) ([]models.Dog, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	feed, found, err := s.feedRepo.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if found {
		return feed, nil
	}
	return s.regenerate(ctx, user.ID)
}

// Regenerate replaces the user's feed with a fresh one
func (s *FeedService) Regenerate(ctx context.Context, user *models.User) ([]models.Dog, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	return s.regenerate(ctx, user.ID)
}

// Remove drops a candidate from the user's feed and returns it, or nil when it was not there
func (s *FeedService) Remove(ctx context.Context, userID, dogID string) (*models.Dog, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	feed, _, err := s.feedRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := indexOfDog(feed, dogID)
	if idx < 0 {
		return nil, nil
	}
	removed := feed[idx]

	remaining := append(feed[:idx:idx], feed[idx+1:]...)
	if err := s.feedRepo.Save(ctx, userID, remaining); err != nil {
		return nil, err
	}
	return &removed, nil
}

// Lookup returns a candidate from the user's feed, or nil when it is not there
func (s *FeedService) Lookup(ctx context.Context, userID, dogID string) (*models.Dog, error) {
	feed, _, err := s.feedRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if idx := indexOfDog(feed, dogID); idx >= 0 {
		return &feed[idx], nil
	}
	return nil, nil
}

func (s *FeedService) regenerate(ctx context.Context, userID string) ([]models.Dog, error) {
	dogs, err := s.dogRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(dogs))
	for _, d := range dogs {
		owned[d.ID] = true
	}

	feed := s.Generate(owned)
	if err := s.feedRepo.Save(ctx, userID, feed); err != nil {
		return nil, err
	}
	return feed, nil
}
