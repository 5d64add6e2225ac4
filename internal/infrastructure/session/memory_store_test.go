package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/taplejung/menu-system/internal/core/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryStore_CreateGetDestroy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 4, domain.RoleClerk, "Ram")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(sess.Token) < 40 {
		t.Fatalf("expected a long random token, got %q", sess.Token)
	}

	got, err := store.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.UserID != 4 || got.Role != domain.RoleClerk || got.Name != "Ram" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Destroy(ctx, sess.Token); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if err := store.Destroy(ctx, sess.Token); err != nil {
		t.Fatalf("second Destroy returned error: %v", err)
	}
	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	a, _ := store.Create(context.Background(), 1, domain.RoleClerk, "A")
	b, _ := store.Create(context.Background(), 1, domain.RoleClerk, "A")
	if a.Token == b.Token {
		t.Fatalf("expected distinct tokens")
	}
}

func TestMemoryStore_ExpiresAfterTTL(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(24*time.Hour, WithClock(clock.Now))
	ctx := context.Background()
	sess, _ := store.Create(ctx, 1, domain.RoleManager, "Admin")

	clock.Advance(24*time.Hour - time.Second)
	if _, err := store.Get(ctx, sess.Token); err != nil {
		t.Fatalf("expected session just before expiry, got %v", err)
	}

	clock.Advance(2 * time.Second)
	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}

func TestMemoryStore_SlidingExtendsExpiry(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(time.Hour, WithClock(clock.Now), WithSliding(true))
	ctx := context.Background()
	sess, _ := store.Create(ctx, 1, domain.RoleClerk, "A")

	for i := 0; i < 3; i++ {
		clock.Advance(50 * time.Minute)
		if _, err := store.Get(ctx, sess.Token); err != nil {
			t.Fatalf("round %d: expected sliding session to stay alive, got %v", i, err)
		}
	}

	clock.Advance(61 * time.Minute)
	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected idle session to expire, got %v", err)
	}
}

func TestMemoryStore_PurgeExpired(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(time.Hour, WithClock(clock.Now))
	ctx := context.Background()
	_, _ = store.Create(ctx, 1, domain.RoleClerk, "old")
	clock.Advance(30 * time.Minute)
	fresh, _ := store.Create(ctx, 2, domain.RoleClerk, "new")
	clock.Advance(31 * time.Minute)

	if n := store.PurgeExpired(); n != 1 {
		t.Fatalf("expected 1 purged session, got %d", n)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session left, got %d", store.Len())
	}
	if _, err := store.Get(ctx, fresh.Token); err != nil {
		t.Fatalf("expected fresh session to survive, got %v", err)
	}
}
