package ports

import "context"

// SigninThrottle guards against credential stuffing by counting failed
// attempts per username inside a rolling window.
type SigninThrottle interface {
	// Allowed reports whether another attempt for username may proceed.
	Allowed(ctx context.Context, username string) (bool, error)
	// RecordFailure registers a failed attempt for username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the counter after a successful signin.
	Reset(ctx context.Context, username string) error
}
