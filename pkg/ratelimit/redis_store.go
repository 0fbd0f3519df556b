package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements a fixed-window counter store on Redis, letting
// replicas behind a load balancer share windows.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// incrScript atomically increments the counter, arms the window TTL on
// first use, and returns the count together with the remaining TTL.
var incrScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return {count, ttl}
`)

// NewRedisStore wraps a Redis client. The prefix namespaces limiter keys
// so independent limiter instances never collide.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if client == nil {
		panic("ratelimit: redis client is required")
	}
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// IncrementAndGet implements Store.
func (s *RedisStore) IncrementAndGet(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	res, err := incrScript.Run(ctx, s.client, []string{s.key(key)}, window.Milliseconds()).Slice()
	if err != nil {
		return 0, time.Time{}, err
	}

	count, ttlMs, err := parseIncrReply(res)
	if err != nil {
		return 0, time.Time{}, err
	}
	if ttlMs < 0 {
		ttlMs = window.Milliseconds()
	}

	return count, time.Now().Add(time.Duration(ttlMs) * time.Millisecond), nil
}

// parseIncrReply validates the {count, ttl} pair returned by incrScript.
// A malformed reply surfaces as an error so the middleware's fail-open
// path fires instead of silently treating the request as the first hit.
func parseIncrReply(res []any) (count, ttlMs int64, err error) {
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("%w: got %d values, want 2", ErrUnexpectedReply, len(res))
	}
	count, ok := res[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("%w: count is %T, want int64", ErrUnexpectedReply, res[0])
	}
	ttlMs, ok = res[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("%w: ttl is %T, want int64", ErrUnexpectedReply, res[1])
	}
	return count, ttlMs, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}
