package trial

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript atomically increments the attempt counter, setting the
// window TTL on the first attempt only. Returns the count and the
// remaining TTL in milliseconds.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisAttemptStore implements AttemptStore backed by Redis. Windows
// expire via key TTLs, so no separate cleanup is needed.
type RedisAttemptStore struct {
	client *redis.Client
	prefix string
}

// NewRedisAttemptStore creates a Redis-backed attempt store.
// Panics if client is nil to fail fast on initialization errors.
func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	if client == nil {
		panic("trial: redis client is required")
	}
	return &RedisAttemptStore{client: client, prefix: "trial:attempts:"}
}

func (s *RedisAttemptStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrScript.Run(ctx, s.client, []string{s.prefix + key}, window.Milliseconds()).Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("trial: increment attempts: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("trial: unexpected script result of length %d", len(res))
	}

	count, ok := res[0].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("trial: unexpected count type %T", res[0])
	}
	ttlMs, ok := res[1].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("trial: unexpected ttl type %T", res[1])
	}

	resetAt := time.Now().Add(time.Duration(ttlMs) * time.Millisecond)
	return int(count), resetAt, nil
}

func (s *RedisAttemptStore) Status(ctx context.Context, key string) (int, time.Time, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.prefix+key)
	ttlCmd := pipe.PTTL(ctx, s.prefix+key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, time.Time{}, fmt.Errorf("trial: attempt status: %w", err)
	}

	count, err := getCmd.Int()
	if err == redis.Nil {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("trial: attempt status: %w", err)
	}

	resetAt := time.Now().Add(ttlCmd.Val())
	return count, resetAt, nil
}

func (s *RedisAttemptStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("trial: reset attempts: %w", err)
	}
	return nil
}
