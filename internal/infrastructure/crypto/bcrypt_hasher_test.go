package crypto

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/infrastructure/queue"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, nil)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "admin123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	ok, err := h.Verify(ctx, "admin123", digest)
	if err != nil || !ok {
		t.Fatalf("expected verify to succeed, got %v, %v", ok, err)
	}
	ok, err = h.Verify(ctx, "admin124", digest)
	if err != nil || ok {
		t.Fatalf("expected verify to fail, got %v, %v", ok, err)
	}
}

func TestBcryptHasher_SaltedDigests(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, nil)
	a, _ := h.Hash(context.Background(), "same")
	b, _ := h.Hash(context.Background(), "same")
	if a == b {
		t.Fatalf("expected different digests for the same input")
	}
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, nil)
	ok, err := h.Verify(context.Background(), "admin123", "not-a-bcrypt-hash")
	if err != nil {
		t.Fatalf("expected no error for malformed digest, got %v", err)
	}
	if ok {
		t.Fatalf("expected malformed digest not to match")
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, nil)
	_, err := h.Hash(context.Background(), strings.Repeat("x", 73))
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher(0, nil)
	digest, err := h.Hash(context.Background(), "pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil || cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d (%v)", DefaultCost, cost, err)
	}
}

func TestBcryptHasher_OnPool(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool := queue.NewPool(2, zerolog.Nop())
	pool.Start(ctx)
	h := NewBcryptHasher(bcrypt.MinCost, pool)

	digest, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if ok, err := h.Verify(ctx, "secret1", digest); err != nil || !ok {
		t.Fatalf("expected verify on pool to succeed, got %v, %v", ok, err)
	}
}
