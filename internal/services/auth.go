package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Default location given to new accounts
var defaultLocation = models.Location{
	Latitude:  37.7749,
	Longitude: -122.4194,
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(encodedHash, password string) error
}

// AuthService handles accounts and sessions
type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	feed        *FeedService
	hasher      PasswordHasher
	jwtSecret   string
	tokenTTL    time.Duration
	locks       *keyedMutex
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	feed *FeedService,
	hasher PasswordHasher,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		feed:        feed,
		hasher:      hasher,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		locks:       newKeyedMutex(),
	}
}

// AuthResult is returned by Signup and Login
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new account and opens a session for it
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: please fill in all fields", ErrValidation)
	}

	// the email check and the credential write must not interleave
	unlock := s.locks.Lock("email:" + email)
	defer unlock()

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Location:  defaultLocation,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateCredential(ctx, &models.Credential{
		UserID:       user.ID,
		Email:        email,
		PasswordHash: hash,
	}); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Login verifies the credentials, opens a session and regenerates the candidate feed
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: please fill in all fields", ErrValidation)
	}

	cred, err := s.userRepo.GetCredential(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, cred.UserID)
	if err != nil {
		return nil, err
	}

	if s.feed != nil {
		if _, err := s.feed.Regenerate(ctx, user); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to regenerate feed on login")
		}
	}

	return s.openSession(ctx, user)
}

// Logout closes a session
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNotLoggedIn
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// Authenticate resolves a bearer token to its live session
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	sessionID, _, err := s.ValidateJWT(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotLoggedIn, err)
	}

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return session, nil
}

// Me returns the stored record of the session's user
func (s *AuthService) Me(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// UpdatePushToken stores the APNs device token of the session's user.
// Other sessions see the change through Me, which reads the user record.
func (s *AuthService) UpdatePushToken(ctx context.Context, sessionID string, user *models.User, pushToken string) (*models.User, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	unlock := s.locks.Lock("user:" + user.ID)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	stored, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if pushToken == "" {
		stored.PushToken = nil
	} else {
		stored.PushToken = &pushToken
	}

	if err := s.userRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	session.User = *stored
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		User:      *user,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.GenerateJWT(session.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GenerateJWT generates a JWT token for a session
func (s *AuthService) GenerateJWT(sessionID, userID string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"user_id":    userID,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the session and user IDs
func (s *AuthService) ValidateJWT(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", "", fmt.Errorf("session_id not found in token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id not found in token")
	}

	return sessionID, userID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
