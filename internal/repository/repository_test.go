package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/storage"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(storage.NewMemoryStore())

	_, err := repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "a@b.c", Name: "Ann"}))
	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	exists, err := repo.EmailExists(ctx, "a@b.c")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.CreateCredential(ctx, &models.Credential{UserID: "u1", Email: "a@b.c", PasswordHash: "h"}))
	exists, err = repo.EmailExists(ctx, "a@b.c")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(storage.NewMemoryStore())

	require.NoError(t, repo.Save(ctx, &models.Session{ID: "s1", User: models.User{ID: "u1"}}))
	s, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.User.ID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDogRepositoryCurrentAndOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewDogRepository(storage.NewMemoryStore())

	dogs, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, dogs)

	require.NoError(t, repo.SaveAll(ctx, "u1", []models.Dog{{ID: "d1"}, {ID: "d2"}}))
	dogs, err = repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, dogs, 2)

	id, err := repo.GetCurrentID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "", id)

	require.NoError(t, repo.SetCurrentID(ctx, "u1", "d2"))
	id, err = repo.GetCurrentID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "d2", id)

	require.NoError(t, repo.SetCurrentID(ctx, "u1", ""))
	id, err = repo.GetCurrentID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "", id)

	require.NoError(t, repo.SetOwner(ctx, "d1", "u1"))
	owner, err := repo.GetOwner(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	require.NoError(t, repo.DeleteOwner(ctx, "d1"))
	_, err = repo.GetOwner(ctx, "d1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeRepositoryKeepsDuplicateEdges(t *testing.T) {
	ctx := context.Background()
	repo := NewLikeRepository(storage.NewMemoryStore())

	_, err := repo.Add(ctx, "u1", "dog-3", "dog-7")
	require.NoError(t, err)
	graph, err := repo.Add(ctx, "u1", "dog-3", "dog-7")
	require.NoError(t, err)

	assert.Equal(t, []string{"dog-7", "dog-7"}, graph["dog-3"])

	stored, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, graph, stored)

	empty, err := repo.Get(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMatchRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(storage.NewMemoryStore())

	_, err := repo.FindPair(ctx, "u1", "dog-3", "dog-7")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Append(ctx, "u1", models.Match{ID: "m1", DogID1: "dog-3", DogID2: "dog-7"}))

	m, err := repo.FindPair(ctx, "u1", "dog-7", "dog-3")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)

	m, err = repo.GetByID(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "dog-3", m.DogID1)

	_, err = repo.GetByID(ctx, "u2", "m1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessageRepositoryPreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(storage.NewMemoryStore())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	texts := []string{"hi", "woof", "park tomorrow?", "yes"}
	for i, text := range texts {
		require.NoError(t, repo.Append(ctx, models.Message{
			ID:        text,
			MatchID:   "m1",
			SenderID:  "u1",
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	msgs, err := repo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, msgs, len(texts))
	for i, text := range texts {
		assert.Equal(t, text, msgs[i].Text)
	}

	other, err := repo.ListByMatch(ctx, "m2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestFeedRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedRepository(storage.NewMemoryStore())

	_, found, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(ctx, "u1", nil))
	feed, found, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, feed)
}
