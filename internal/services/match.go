package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pawnder-backend/internal/events"
	"pawnder-backend/internal/metrics"
	"pawnder-backend/internal/models"
	"pawnder-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, event any) error
}

// MatchBroadcaster pushes realtime events to connected users
type MatchBroadcaster interface {
	IsOnline(userID string) bool
	NotifyMatchCreated(userID string, match models.Match) error
}

// PushNotifier delivers device push notifications
type PushNotifier interface {
	Push(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

// SwipeResult reports the outcome of a right swipe
type SwipeResult struct {
	Matched bool          `json:"matched"`
	Created bool          `json:"created"`
	Match   *models.Match `json:"match,omitempty"`
}

// MatchService records likes and turns reciprocal likes into matches
type MatchService struct {
	likeRepo  *repository.LikeRepository
	matchRepo *repository.MatchRepository
	dogRepo   *repository.DogRepository
	userRepo  *repository.UserRepository
	dogs      *DogService
	feed      *FeedService

	broadcaster MatchBroadcaster
	publisher   EventPublisher
	pusher      PushNotifier

	// evaluations read two like graphs and two match lists, so they run one at a time
	mu sync.Mutex
}

// NewMatchService creates a new match service. broadcaster, publisher and pusher may be nil.
func NewMatchService(
	likeRepo *repository.LikeRepository,
	matchRepo *repository.MatchRepository,
	dogRepo *repository.DogRepository,
	userRepo *repository.UserRepository,
	dogs *DogService,
	feed *FeedService,
	broadcaster MatchBroadcaster,
	publisher EventPublisher,
	pusher PushNotifier,
) *MatchService {
	return &MatchService{
		likeRepo:    likeRepo,
		matchRepo:   matchRepo,
		dogRepo:     dogRepo,
		userRepo:    userRepo,
		dogs:        dogs,
		feed:        feed,
		broadcaster: broadcaster,
		publisher:   publisher,
		pusher:      pusher,
	}
}

// SwipeRight records that the user's active dog likes likedID. When likedID has
// already liked the active dog back, the pair is matched. A pair is only ever
// given one match; repeating the swipe reports the existing one.
func (s *MatchService) SwipeRight(ctx context.Context, user *models.User, likedID string) (*SwipeResult, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	likedID = strings.TrimSpace(likedID)
	if likedID == "" {
		return nil, fmt.Errorf("%w: dog_id is required", ErrValidation)
	}

	current, err := s.dogs.Current(ctx, user)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoActiveDog
	}
	if current.ID == likedID {
		return nil, fmt.Errorf("%w: a dog cannot like itself", ErrValidation)
	}

	result, owners, err := s.evaluate(ctx, user.ID, current.ID, likedID)
	if err != nil {
		return nil, err
	}

	metrics.IncSwipe("right")

	if result.Created {
		metrics.IncMatchCreated()
		log.Info().
			Str("match_id", result.Match.ID).
			Str("dog_id_1", result.Match.DogID1).
			Str("dog_id_2", result.Match.DogID2).
			Msg("Match created")
		s.announce(ctx, *result.Match, owners)
	}

	return result, nil
}

func (s *MatchService) evaluate(ctx context.Context, userID, likerID, likedID string) (*SwipeResult, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	graph, err := s.likeRepo.Add(ctx, userID, likerID, likedID)
	if err != nil {
		return nil, nil, err
	}

	ownerID, err := s.resolveOwner(ctx, userID, likedID)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.feed.Remove(ctx, userID, likedID); err != nil {
		return nil, nil, err
	}

	ownerGraph := graph
	if ownerID != userID {
		if ownerGraph, err = s.likeRepo.Get(ctx, ownerID); err != nil {
			return nil, nil, err
		}
	}

	if !ownerGraph.Liked(likedID, likerID) {
		return &SwipeResult{}, nil, nil
	}

	existing, err := s.matchRepo.FindPair(ctx, userID, likerID, likedID)
	if err == nil {
		return &SwipeResult{Matched: true, Match: existing}, nil, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	match := models.Match{
		ID:        uuid.New().String(),
		DogID1:    likerID,
		DogID2:    likedID,
		CreatedAt: time.Now(),
	}

	owners := []string{userID}
	if err := s.matchRepo.Append(ctx, userID, match); err != nil {
		return nil, nil, err
	}

	if ownerID != userID {
		if _, err := s.matchRepo.FindPair(ctx, ownerID, likerID, likedID); errors.Is(err, repository.ErrNotFound) {
			if err := s.matchRepo.Append(ctx, ownerID, match); err != nil {
				return nil, nil, err
			}
			owners = append(owners, ownerID)
		} else if err != nil {
			return nil, nil, err
		}
	}

	return &SwipeResult{Matched: true, Created: true, Match: &match}, owners, nil
}

// resolveOwner finds whose like graph holds the liked dog's likes: the owner
// index for real profiles, the feed for synthetic candidates, else the swiper.
func (s *MatchService) resolveOwner(ctx context.Context, userID, dogID string) (string, error) {
	ownerID, err := s.dogRepo.GetOwner(ctx, dogID)
	if err == nil {
		return ownerID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	candidate, err := s.feed.Lookup(ctx, userID, dogID)
	if err != nil {
		return "", err
	}
	if candidate != nil && candidate.OwnerID != "" {
		return candidate.OwnerID, nil
	}
	return userID, nil
}

// SwipeLeft passes on a candidate
func (s *MatchService) SwipeLeft(ctx context.Context, user *models.User, dogID string) error {
	if user == nil {
		return ErrNotLoggedIn
	}
	if strings.TrimSpace(dogID) == "" {
		return fmt.Errorf("%w: dog_id is required", ErrValidation)
	}

	if _, err := s.feed.Remove(ctx, user.ID, dogID); err != nil {
		return err
	}
	metrics.IncSwipe("left")
	return nil
}

// ListMatches returns the user's matches, optionally only those involving dogID
func (s *MatchService) ListMatches(ctx context.Context, user *models.User, dogID string) ([]models.Match, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	matches, err := s.matchRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if dogID == "" || m.Involves(dogID) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// GetMatch returns one of the user's matches
func (s *MatchService) GetMatch(ctx context.Context, user *models.User, matchID string) (*models.Match, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	match, err := s.matchRepo.GetByID(ctx, user.ID, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// announce tells every owner about a new match. Failures are logged only.
func (s *MatchService) announce(ctx context.Context, match models.Match, ownerIDs []string) {
	if s.publisher != nil {
		event := events.MatchCreated{
			MatchID:   match.ID,
			DogID1:    match.DogID1,
			DogID2:    match.DogID2,
			OwnerIDs:  ownerIDs,
			CreatedAt: match.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, events.SubjectMatchCreated, event); err != nil {
			log.Error().Err(err).Str("match_id", match.ID).Msg("Failed to publish match event")
		}
	}

	for _, ownerID := range ownerIDs {
		if s.broadcaster != nil && s.broadcaster.IsOnline(ownerID) {
			if err := s.broadcaster.NotifyMatchCreated(ownerID, match); err != nil {
				log.Error().Err(err).Str("user_id", ownerID).Msg("Failed to notify user about match")
			}
		}

		if s.pusher != nil {
			s.pushMatch(ctx, ownerID, match)
		}
	}
}

func (s *MatchService) pushMatch(ctx context.Context, userID string, match models.Match) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user.PushToken == nil {
		return
	}

	err = s.pusher.Push(ctx, *user.PushToken, "It's a match!", "Your dog has a new match. Say hello!", map[string]string{
		"match_id": match.ID,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to push match notification")
	}
}
