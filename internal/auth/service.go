package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RafaelR4mos/auth-session-app-example/internal/models"
)

// Store defines the persistence the session service needs.
type Store interface {
	// FindUserByEmail looks up a user by normalized (lower-case) email.
	// Returns ErrNotFound when no such user exists.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateUser inserts a user and returns its id. Returns ErrEmailTaken
	// when the email is already present.
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)

	// InsertSession persists a session row expiring ttl from the store's
	// own clock and returns the resulting expiry instant.
	InsertSession(ctx context.Context, token string, userID int64, ttl time.Duration) (time.Time, error)

	// FindLiveSessionUser resolves a token into its owning user, honoring
	// only sessions whose expiry is still in the future. Expired and
	// unknown tokens both return ErrNotFound.
	FindLiveSessionUser(ctx context.Context, token string) (*models.SessionUser, error)

	// DeleteSession removes a session row. Deleting an absent token is
	// not an error.
	DeleteSession(ctx context.Context, token string) error
}

// SessionToken is a freshly minted session: the bearer token and the instant
// the store will stop honoring it. ExpiresAt doubles as the cookie expiry.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// Service owns the session lifecycle: credential verification, session
// creation, lookup, and revocation against the store.
type Service struct {
	store  Store
	tokens *TokenGenerator
	ttl    time.Duration
	log    *slog.Logger
}

func NewService(store Store, tokens *TokenGenerator, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, ttl: ttl, log: log}
}

// Login verifies the credentials and mints a session. An unknown email and a
// wrong password both come back as ErrInvalidCredentials; the distinguishing
// cause is only logged.
func (s *Service) Login(ctx context.Context, email, password string) (*SessionToken, error) {
	email = NormalizeEmail(email)

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Debug("login rejected", "reason", "unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		s.log.Debug("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.CreateSession(ctx, user.ID)
}

// Register creates a user and immediately authenticates it, minting a session
// exactly as Login would.
func (s *Service) Register(ctx context.Context, email, password string) (*SessionToken, error) {
	email = NormalizeEmail(email)

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.store.CreateUser(ctx, email, hash)
	if err != nil {
		// Concurrent registration of the same email loses the insert race.
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", userID, "email", email)
	return s.CreateSession(ctx, userID)
}

// CreateSession generates a token and persists a session row for the user.
// Token uniqueness is enforced by the store's primary key; collisions are
// astronomically unlikely and surface as a store error, never a retry.
func (s *Service) CreateSession(ctx context.Context, userID int64) (*SessionToken, error) {
	token, err := s.tokens.Generate()
	if err != nil {
		return nil, err
	}

	expiresAt, err := s.store.InsertSession(ctx, token, userID, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return &SessionToken{Token: token, ExpiresAt: expiresAt}, nil
}

// CurrentUser resolves a session token into its user. An absent cookie, an
// unknown token, and an expired session all return ErrNotFound, so a caller
// cannot tell a logged-out visitor from one whose session lapsed.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.SessionUser, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return s.store.FindLiveSessionUser(ctx, token)
}

// Logout deletes the session row named by the token. Safe to call with an
// empty, unknown, or already-deleted token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// NormalizeEmail lower-cases an email for storage and lookup so uniqueness
// and login are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
