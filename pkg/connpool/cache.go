package connpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds cache tuning, read once at process start.
type Config struct {
	HealthCheckTimeout time.Duration `env:"TENANT_DB_HEALTHCHECK_TIMEOUT" envDefault:"5s"`
	IdleTimeout        time.Duration `env:"TENANT_DB_IDLE_TIMEOUT" envDefault:"30m"`
	SweepInterval      time.Duration `env:"TENANT_DB_SWEEP_INTERVAL" envDefault:"5m"`
	MaxConns           int32         `env:"TENANT_DB_MAX_CONNS" envDefault:"5"`
	MinConns           int32         `env:"TENANT_DB_MIN_CONNS" envDefault:"0"`
}

// Constructor builds a live client for a descriptor. It must verify the
// connection is usable before returning; the cache bounds it with the
// health-check timeout through ctx.
type Constructor func(ctx context.Context, descriptor string) (*pgxpool.Pool, error)

type entry struct {
	pool     *pgxpool.Pool
	lastUsed time.Time
}

// call is an in-flight construction. done is closed once pool/err are set.
type call struct {
	done chan struct{}
	pool *pgxpool.Pool
	err  error
}

// Cache is a process-wide map from connection descriptor to a live scoped
// database client. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	inflight map[string]*call
	closed   bool

	construct Constructor
	cfg       Config
	now       func() time.Time

	stop      chan struct{}
	sweepDone chan struct{}
}

// Option configures a Cache.
type Option func(*Cache)

// WithConstructor overrides how clients are built. Used by tests and by
// deployments with nonstandard descriptor formats.
func WithConstructor(fn Constructor) Option {
	return func(c *Cache) {
		if fn != nil {
			c.construct = fn
		}
	}
}

// WithClock overrides the cache's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a connection cache and starts its idle-eviction sweep.
func New(cfg Config, opts ...Option) *Cache {
	if cfg.HealthCheckTimeout <= 0 {
		cfg.HealthCheckTimeout = 5 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}

	c := &Cache{
		entries:   make(map[string]*entry),
		inflight:  make(map[string]*call),
		cfg:       cfg,
		now:       time.Now,
		stop:      make(chan struct{}),
		sweepDone: make(chan struct{}),
	}
	c.construct = defaultConstructor(cfg)

	for _, opt := range opts {
		opt(c)
	}

	go c.sweep()

	return c
}

// Acquire returns the live client for a descriptor, constructing it on
// first use. Concurrent first acquisitions share a single construction.
// Caller cancellation abandons the wait but never the construction: the
// result is still published for other in-flight requests.
func (c *Cache) Acquire(ctx context.Context, descriptor string) (*pgxpool.Pool, error) {
	if descriptor == "" {
		return nil, ErrEmptyDescriptor
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCacheClosed
	}

	if e, exists := c.entries[descriptor]; exists {
		e.lastUsed = c.now()
		pool := e.pool
		c.mu.Unlock()
		return pool, nil
	}

	if inflight, exists := c.inflight[descriptor]; exists {
		c.mu.Unlock()
		return c.await(ctx, inflight)
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[descriptor] = cl
	c.mu.Unlock()

	go c.build(descriptor, cl)

	return c.await(ctx, cl)
}

// await blocks until the in-flight construction publishes its result or
// the caller's context ends. Abandoning the wait leaves shared state alone.
func (c *Cache) await(ctx context.Context, cl *call) (*pgxpool.Pool, error) {
	select {
	case <-cl.done:
		return cl.pool, cl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// build runs the construction for a descriptor and publishes the result.
// A failed first attempt is retried exactly once with a fresh construction
// before the failure surfaces to every waiter. Detached from any request
// context so a caller abort cannot poison the shared cache.
func (c *Cache) build(descriptor string, cl *call) {
	pool, err := c.buildOnce(descriptor)
	if err != nil {
		pool, err = c.buildOnce(descriptor)
	}

	c.mu.Lock()
	delete(c.inflight, descriptor)
	if err == nil {
		if c.closed {
			// Lost the race against shutdown; do not leak the pool.
			pool.Close()
			err = ErrCacheClosed
			pool = nil
		} else {
			c.entries[descriptor] = &entry{pool: pool, lastUsed: c.now()}
		}
	}
	c.mu.Unlock()

	cl.pool = pool
	cl.err = err
	close(cl.done)
}

func (c *Cache) buildOnce(descriptor string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.HealthCheckTimeout)
	defer cancel()

	pool, err := c.construct(ctx, descriptor)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailure, err)
	}
	return pool, nil
}

// Purge closes and removes the client for a descriptor. Callers invoke it
// after a cached client produced a hard connection error so the next
// Acquire reconstructs it.
func (c *Cache) Purge(descriptor string) {
	c.mu.Lock()
	e, exists := c.entries[descriptor]
	if exists {
		delete(c.entries, descriptor)
	}
	c.mu.Unlock()

	if exists {
		e.pool.Close()
	}
}

// Len returns the number of completed cache entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweep periodically evicts entries idle beyond the configured timeout.
func (c *Cache) sweep() {
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	defer close(c.sweepDone)

	for {
		select {
		case <-ticker.C:
			c.evictIdle()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) evictIdle() {
	cutoff := c.now().Add(-c.cfg.IdleTimeout)

	c.mu.Lock()
	var stale []*entry
	for descriptor, e := range c.entries {
		if e.lastUsed.Before(cutoff) {
			stale = append(stale, e)
			delete(c.entries, descriptor)
		}
	}
	c.mu.Unlock()

	// Close outside the lock: pool.Close blocks until clients release
	// their connections.
	for _, e := range stale {
		e.pool.Close()
	}
}

// Close stops the sweep and closes every pooled client. Safe to call once
// during graceful shutdown; subsequent Acquire calls fail with ErrCacheClosed.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	remaining := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		remaining = append(remaining, e)
	}
	c.entries = make(map[string]*entry)
	c.mu.Unlock()

	close(c.stop)
	<-c.sweepDone

	for _, e := range remaining {
		e.pool.Close()
	}
	return nil
}

// defaultConstructor builds a pgxpool for the descriptor and verifies it
// with a ping before handing it out.
func defaultConstructor(cfg Config) Constructor {
	return func(ctx context.Context, descriptor string) (*pgxpool.Pool, error) {
		poolCfg, err := pgxpool.ParseConfig(descriptor)
		if err != nil {
			return nil, err
		}
		if cfg.MaxConns > 0 {
			poolCfg.MaxConns = cfg.MaxConns
		}
		if cfg.MinConns > 0 {
			poolCfg.MinConns = cfg.MinConns
		}
		poolCfg.MaxConnIdleTime = cfg.IdleTimeout

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, err
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}

		return pool, nil
	}
}
