package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// SigninThrottle counts failed signin attempts per username in Redis.
// Key format: signin_attempts:<username>, expiring after the lockout window
// so a quiet account unlocks itself.
type SigninThrottle struct {
	client      *redis.Client
	maxAttempts int
	lockout     time.Duration
}

// NewSigninThrottle creates a throttle wrapping the given Redis client.
// Non-positive limits fall back to defaults.
func NewSigninThrottle(client *redis.Client, maxAttempts int, lockout time.Duration) *SigninThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &SigninThrottle{client: client, maxAttempts: maxAttempts, lockout: lockout}
}

// Allowed reports whether username has failed fewer than maxAttempts times
// inside the current lockout window.
func (t *SigninThrottle) Allowed(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle get: %w", err)
	}
	return n < t.maxAttempts, nil
}

// RecordFailure increments the failure counter, starting the lockout window
// on the first failure.
func (t *SigninThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.lockout).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful signin.
func (t *SigninThrottle) Reset(ctx context.Context, username string) error {
	if err := t.client.Del(ctx, t.key(username)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *SigninThrottle) key(username string) string {
	return "signin_attempts:" + username
}
