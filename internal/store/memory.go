package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RafaelR4mos/auth-session-app-example/internal/auth"
	"github.com/RafaelR4mos/auth-session-app-example/internal/models"
)

// MemoryStore is an in-memory implementation of the store surface, used by
// tests that need an isolated instance per case. It mirrors the PostgreSQL
// semantics: case-sensitive token keys, liveness filtered at lookup time
// only, cascade delete of sessions with their user. The clock is injectable
// so expiry behavior can be tested without sleeping.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[string]*models.User // keyed by email
	sessions map[string]*memorySession
	now      func() time.Time
}

type memorySession struct {
	userID    int64
	createdAt time.Time
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

// SetClock replaces the store's clock. Both session insertion and liveness
// filtering use it, matching the single-clock rule of the SQL store.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, auth.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, email, passwordHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return 0, auth.ErrEmailTaken
	}
	s.nextID++
	s.users[email] = &models.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	return s.nextID, nil
}

func (s *MemoryStore) InsertSession(_ context.Context, token string, userID int64, ttl time.Duration) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sessions[token] = &memorySession{
		userID:    userID,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	return now.Add(ttl), nil
}

func (s *MemoryStore) FindLiveSessionUser(_ context.Context, token string) (*models.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || !sess.expiresAt.After(s.now()) {
		return nil, auth.ErrNotFound
	}
	for _, u := range s.users {
		if u.ID == sess.userID {
			return &models.SessionUser{ID: u.ID, Email: u.Email}, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (s *MemoryStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) DeleteSessionByID(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return 0, nil
	}
	delete(s.sessions, id)
	return 1, nil
}

func (s *MemoryStore) ListSessions(_ context.Context) ([]models.SessionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := []models.SessionRow{}
	for token, sess := range s.sessions {
		for _, u := range s.users {
			if u.ID == sess.userID {
				rows = append(rows, models.SessionRow{
					ID:        token,
					UserID:    u.ID,
					Email:     u.Email,
					CreatedAt: sess.createdAt,
					ExpiresAt: sess.expiresAt,
				})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}
