// Package session holds the process-local session store and the token
// generator shared by every store implementation.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/pkg/metrics"
)

const DefaultTTL = 24 * time.Hour

type Option func(*MemoryStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// WithSliding makes every successful Get push the expiry out by a full TTL.
func WithSliding(sliding bool) Option {
	return func(s *MemoryStore) { s.sliding = sliding }
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	ttl      time.Duration
	sliding  bool
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration, opts ...Option) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, userID int64, role domain.Role, name string) (*domain.Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess := domain.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return &sess, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*domain.Session, error) {
	now := s.now()

	if !s.sliding {
		s.mu.RLock()
		sess, ok := s.sessions[token]
		s.mu.RUnlock()
		if !ok || sess.Expired(now) {
			return nil, domain.ErrSessionNotFound
		}
		return &sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || sess.Expired(now) {
		return nil, domain.ErrSessionNotFound
	}
	sess.ExpiresAt = now.Add(s.ttl)
	s.sessions[token] = sess
	return &sess, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return nil
}

// PurgeExpired drops expired sessions and returns how many were removed.
func (s *MemoryStore) PurgeExpired() int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return removed
}

// Len returns the number of sessions held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
