package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFakeCache(t *testing.T) {
	ctx := context.Background()

	t.Run("configured functions are called", func(t *testing.T) {
		f := &FakeCache{
			GetFn: func(ctx context.Context, key string) *redis.StringCmd {
				return redis.NewStringResult("value", nil)
			},
			SetFn: func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("OK", nil)
			},
			DelFn: func(ctx context.Context, keys ...string) *redis.IntCmd {
				return redis.NewIntResult(int64(len(keys)), nil)
			},
			CloseFn: func() error { return nil },
		}
		require.Equal(t, "value", f.Get(ctx, "k").Val())
		require.Equal(t, "OK", f.Set(ctx, "k", "v", time.Minute).Val())
		require.Equal(t, int64(2), f.Del(ctx, "a", "b").Val())
		require.NoError(t, f.Close())
	})

	t.Run("unexpected calls panic", func(t *testing.T) {
		f := &FakeCache{}
		require.Panics(t, func() { f.Get(ctx, "k") })
		require.Panics(t, func() { f.Set(ctx, "k", "v", 0) })
		require.Panics(t, func() { f.Del(ctx, "k") })
		require.NoError(t, f.Close())
	})
}
