package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements an in-memory fixed-window counter store.
// Mutations happen under one mutex with no suspension points, so a check
// can never observe a torn counter.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	sweepInterval time.Duration
	now           func() time.Time
	stop          chan struct{}
	done          chan struct{}
	closeOnce     sync.Once
}

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithSweepInterval sets how often expired windows are removed.
func WithSweepInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithClock overrides the store's time source. Intended for tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an in-memory store and starts its sweep, which
// bounds memory by removing entries whose window has expired.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:       make(map[string]*window),
		sweepInterval: time.Minute,
		now:           time.Now,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.sweep()

	return s
}

// IncrementAndGet implements Store.
func (s *MemoryStore) IncrementAndGet(ctx context.Context, key string, windowSize time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, exists := s.windows[key]

	// First request per key per window creates a fresh counter.
	if !exists || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(windowSize)}
		s.windows[key] = w
		return 1, w.resetAt, nil
	}

	w.count++
	return w.count, w.resetAt, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

// Len returns the number of tracked windows, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, key)
		}
	}
}

// Close stops the sweep goroutine and waits for it to finish.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}
