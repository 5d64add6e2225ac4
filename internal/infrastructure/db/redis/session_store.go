package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/infrastructure/session"
)

const keyPrefix = "session:"

// SessionStore keeps sessions in Redis so that several API processes can
// share them. Expiry is enforced by the key TTL.
// Key format: session:<token>
type SessionStore struct {
	client  *redis.Client
	ttl     time.Duration
	sliding bool
	now     func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration, sliding bool) *SessionStore {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &SessionStore{client: client, ttl: ttl, sliding: sliding, now: time.Now}
}

func (s *SessionStore) Create(ctx context.Context, userID int64, role domain.Role, name string) (*domain.Session, error) {
	token, err := session.NewToken()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sess := &domain.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}
	return sess, nil
}

// Get loads the session. With sliding expiry the key TTL is refreshed in the
// same round trip.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	var (
		payload []byte
		err     error
	)
	if s.sliding {
		payload, err = s.client.GetEx(ctx, s.key(token), s.ttl).Bytes()
	} else {
		payload, err = s.client.Get(ctx, s.key(token)).Bytes()
	}
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	if s.sliding {
		sess.ExpiresAt = s.now().UTC().Add(s.ttl)
	}
	return &sess, nil
}

func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return keyPrefix + token
}
