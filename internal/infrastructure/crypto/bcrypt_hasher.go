package crypto

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/pkg/metrics"
)

// DefaultCost matches the work factor the stored hashes were created with.
const DefaultCost = 10

// Runner executes fn off the calling goroutine. *queue.Pool satisfies it.
type Runner interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

// BcryptHasher implements ports.PasswordHasher. When runner is nil the work
// happens on the caller's goroutine.
type BcryptHasher struct {
	cost   int
	runner Runner
}

func NewBcryptHasher(cost int, runner Runner) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost, runner: runner}
}

func (h *BcryptHasher) Hash(ctx context.Context, plain string) (string, error) {
	var digest []byte
	err := h.run(ctx, "hash", func(context.Context) error {
		var err error
		digest, err = bcrypt.GenerateFromPassword([]byte(plain), h.cost)
		return err
	})
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.BadRequest("Password must be at most 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A malformed digest is a
// mismatch, not an error.
func (h *BcryptHasher) Verify(ctx context.Context, plain, digest string) (bool, error) {
	var match bool
	err := h.run(ctx, "verify", func(context.Context) error {
		match = bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
		return nil
	})
	if err != nil {
		return false, err
	}
	return match, nil
}

func (h *BcryptHasher) run(ctx context.Context, op string, fn func(context.Context) error) error {
	timed := func(ctx context.Context) error {
		start := time.Now()
		defer func() {
			metrics.HashDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		}()
		return fn(ctx)
	}
	if h.runner == nil {
		return timed(ctx)
	}
	return h.runner.Do(ctx, timed)
}
