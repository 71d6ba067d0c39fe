package services

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/repository"
	"pawnder-backend/internal/security"
	"pawnder-backend/internal/storage"
)

var fastArgon2 = &security.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type recordingBroadcaster struct {
	mu       sync.Mutex
	online   map[string]bool
	notified []string
}

func (b *recordingBroadcaster) IsOnline(userID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.online[userID]
}

func (b *recordingBroadcaster) NotifyMatchCreated(userID string, _ models.Match) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notified = append(b.notified, userID)
	return nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

type recordingPusher struct {
	mu     sync.Mutex
	tokens []string
}

func (p *recordingPusher) Push(_ context.Context, deviceToken, _, _ string, _ map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens = append(p.tokens, deviceToken)
	return nil
}

type testEnv struct {
	store       storage.Store
	userRepo    *repository.UserRepository
	dogRepo     *repository.DogRepository
	likeRepo    *repository.LikeRepository
	matchRepo   *repository.MatchRepository
	feedRepo    *repository.FeedRepository
	auth        *AuthService
	dogs        *DogService
	feed        *FeedService
	matches     *MatchService
	messages    *MessageService
	broadcaster *recordingBroadcaster
	publisher   *recordingPublisher
	pusher      *recordingPusher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	env := &testEnv{
		store:       store,
		userRepo:    repository.NewUserRepository(store),
		dogRepo:     repository.NewDogRepository(store),
		likeRepo:    repository.NewLikeRepository(store),
		matchRepo:   repository.NewMatchRepository(store),
		feedRepo:    repository.NewFeedRepository(store),
		broadcaster: &recordingBroadcaster{online: map[string]bool{}},
		publisher:   &recordingPublisher{},
		pusher:      &recordingPusher{},
	}

	env.feed = NewFeedService(env.feedRepo, env.dogRepo, 20, rand.New(rand.NewPCG(1, 2)))
	env.auth = NewAuthService(
		env.userRepo,
		repository.NewSessionRepository(store),
		env.feed,
		security.NewArgon2Hasher(fastArgon2),
		"test-secret",
		time.Hour,
	)
	env.dogs = NewDogService(env.dogRepo)
	env.matches = NewMatchService(
		env.likeRepo,
		env.matchRepo,
		env.dogRepo,
		env.userRepo,
		env.dogs,
		env.feed,
		env.broadcaster,
		env.publisher,
		env.pusher,
	)
	env.messages = NewMessageService(repository.NewMessageRepository(store), env.matches, env.publisher)
	return env
}

func (e *testEnv) signup(t *testing.T, email string) *models.User {
	t.Helper()
	result, err := e.auth.Signup(context.Background(), email, "hunter2", "Owner "+email)
	require.NoError(t, err)
	return result.User
}

func (e *testEnv) createDog(t *testing.T, user *models.User, name string) *models.Dog {
	t.Helper()
	dog, err := e.dogs.Create(context.Background(), user, validDogInput(name))
	require.NoError(t, err)
	return dog
}

func validDogInput(name string) DogInput {
	return DogInput{
		Name:   name,
		Age:    3,
		Breed:  "Beagle",
		Gender: models.GenderMale,
		Bio:    "Loves treats",
		Photos: []string{"https://example.com/" + name + ".jpg"},
	}
}
