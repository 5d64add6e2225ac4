package ports

import "context"

type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	// Verify never fails on a malformed digest; it reports false instead.
	Verify(ctx context.Context, plain, digest string) (bool, error)
}
