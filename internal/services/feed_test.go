package services

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/repository"
	"pawnder-backend/internal/storage"
)

func TestGenerateFeed(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFeedService(repository.NewFeedRepository(store), repository.NewDogRepository(store), 20, rand.New(rand.NewPCG(7, 7)))

	feed := svc.Generate(nil)
	require.Len(t, feed, 20)

	seen := map[string]bool{}
	for i, d := range feed {
		assert.False(t, seen[d.ID], "duplicate candidate %s", d.ID)
		seen[d.ID] = true

		assert.NotEmpty(t, d.OwnerID)
		assert.GreaterOrEqual(t, d.Age, 1, "candidate %d", i)
		assert.LessOrEqual(t, d.Age, 15, "candidate %d", i)
		assert.Contains(t, candidateBreeds, d.Breed)
		assert.Contains(t, candidateBios, d.Bio)
		assert.Contains(t, []string{models.GenderMale, models.GenderFemale}, d.Gender)
		assert.Len(t, d.Photos, 1)
	}
}

func TestGenerateFeedExcludesOwnedDogs(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFeedService(repository.NewFeedRepository(store), repository.NewDogRepository(store), 20, rand.New(rand.NewPCG(1, 1)))

	feed := svc.Generate(map[string]bool{"mock-dog-3": true, "mock-dog-12": true})
	assert.Len(t, feed, 18)
	for _, d := range feed {
		assert.NotEqual(t, "mock-dog-3", d.ID)
		assert.NotEqual(t, "mock-dog-12", d.ID)
	}
}

func TestGenerateFeedIsDeterministicForSeed(t *testing.T) {
	store := storage.NewMemoryStore()
	newSvc := func() *FeedService {
		return NewFeedService(repository.NewFeedRepository(store), repository.NewDogRepository(store), 5, rand.New(rand.NewPCG(3, 4)))
	}

	a := newSvc().Generate(nil)
	b := newSvc().Generate(nil)
	for i := range a {
		assert.Equal(t, a[i].Breed, b[i].Breed)
		assert.Equal(t, a[i].Age, b[i].Age)
	}
}

func TestFeedIsStoredUntilRefresh(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.signup(t, "owner@example.com")

	_, found, err := env.feedRepo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, found)

	feed, err := env.feed.Feed(ctx, user)
	require.NoError(t, err)
	require.Len(t, feed, 20)

	require.NoError(t, env.matches.SwipeLeft(ctx, user, feed[0].ID))

	again, err := env.feed.Feed(ctx, user)
	require.NoError(t, err)
	assert.Len(t, again, 19)

	refreshed, err := env.feed.Regenerate(ctx, user)
	require.NoError(t, err)
	assert.Len(t, refreshed, 20)

	_, err = env.feed.Feed(ctx, nil)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = env.feed.Regenerate(ctx, nil)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestEmptyFeedStaysEmpty(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.signup(t, "owner@example.com")

	require.NoError(t, env.feedRepo.Save(ctx, user.ID, []models.Dog{}))

	feed, err := env.feed.Feed(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
