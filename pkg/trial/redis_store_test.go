package trial_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authzkit/pkg/trial"
)

func newRedisAttemptStore(t *testing.T) (*trial.RedisAttemptStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return trial.NewRedisAttemptStore(client), mr
}

func TestRedisAttemptStore(t *testing.T) {
	t.Run("increments within a window", func(t *testing.T) {
		s, _ := newRedisAttemptStore(t)
		ctx := context.Background()

		for want := 1; want <= 3; want++ {
			count, resetAt, err := s.Increment(ctx, "actor-1", time.Hour)
			require.NoError(t, err)
			assert.Equal(t, want, count)
			assert.WithinDuration(t, time.Now().Add(time.Hour), resetAt, time.Minute)
		}
	})

	t.Run("window expires via key TTL", func(t *testing.T) {
		s, mr := newRedisAttemptStore(t)
		ctx := context.Background()

		for range 3 {
			_, _, err := s.Increment(ctx, "actor-1", time.Hour)
			require.NoError(t, err)
		}

		mr.FastForward(time.Hour + time.Minute)

		count, _, err := s.Increment(ctx, "actor-1", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("status reads without consuming", func(t *testing.T) {
		s, _ := newRedisAttemptStore(t)
		ctx := context.Background()

		count, resetAt, err := s.Status(ctx, "actor-1")
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.True(t, resetAt.IsZero())

		_, _, err = s.Increment(ctx, "actor-1", time.Hour)
		require.NoError(t, err)

		count, resetAt, err = s.Status(ctx, "actor-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.WithinDuration(t, time.Now().Add(time.Hour), resetAt, time.Minute)
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		s, _ := newRedisAttemptStore(t)
		ctx := context.Background()

		_, _, err := s.Increment(ctx, "actor-1", time.Hour)
		require.NoError(t, err)
		require.NoError(t, s.Reset(ctx, "actor-1"))

		count, _, err := s.Increment(ctx, "actor-1", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s, _ := newRedisAttemptStore(t)
		ctx := context.Background()

		_, _, err := s.Increment(ctx, "actor-1", time.Hour)
		require.NoError(t, err)

		count, _, err := s.Increment(ctx, "actor-2", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("panics on nil client", func(t *testing.T) {
		assert.Panics(t, func() {
			trial.NewRedisAttemptStore(nil)
		})
	})
}
