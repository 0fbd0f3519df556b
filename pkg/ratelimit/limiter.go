package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Limiter is a fixed-window request counter per caller identifier.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

// New creates a fixed-window limiter over the given store.
func New(store Store, cfg Config) (*Limiter, error) {
	if store == nil {
		panic("ratelimit: Store is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Limiter{
		store:  store,
		limit:  cfg.MaxRequests,
		window: cfg.Window,
	}, nil
}

// Check counts one request against the caller's current window and reports
// whether it may proceed. Denial is expressed through Result.Allowed, never
// through the error: the error is non-nil only for store failures, and
// callers are expected to fail open on it.
func (l *Limiter) Check(ctx context.Context, key string) (*Result, error) {
	count, resetAt, err := l.store.IncrementAndGet(ctx, key, l.window)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the window for a key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Delete(ctx, key)
}

func (c Config) validate() error {
	if c.MaxRequests <= 0 {
		return fmt.Errorf("%w: max requests must be positive, got %d", ErrInvalidConfig, c.MaxRequests)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}
