package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/portfolio/pkg/cache"
)

type clock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newMemory[V any](t *testing.T, opts ...cache.MemoryOption) *cache.Memory[V] {
	t.Helper()
	c := cache.NewMemory[V](append([]cache.MemoryOption{cache.WithCleanupInterval(0)}, opts...)...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](t)
		_, err := c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("set get delete", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](t)
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", v)

		require.NoError(t, c.Delete(ctx, "k"))
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("ttl semantics", func(t *testing.T) {
		t.Parallel()

		clk := &clock{now: time.Unix(1_700_000_000, 0)}
		c := newMemory[int](t, cache.WithClock(clk.Now), cache.WithDefaultTTL(time.Minute))

		require.NoError(t, c.Set(ctx, "explicit", 1, 10*time.Second))
		require.NoError(t, c.Set(ctx, "default", 2, 0))
		require.NoError(t, c.Set(ctx, "forever", 3, -1))

		clk.Advance(11 * time.Second)
		_, err := c.Get(ctx, "explicit")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "default")
		require.NoError(t, err)

		clk.Advance(time.Hour)
		_, err = c.Get(ctx, "default")
		require.ErrorIs(t, err, cache.ErrNotFound)
		v, err := c.Get(ctx, "forever")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := newMemory[int](t, cache.WithMaxEntries(2))
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
		_, _ = c.Get(ctx, "a")
		require.NoError(t, c.Set(ctx, "c", 3, time.Minute))

		_, err := c.Get(ctx, "b")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("closed cache rejects writes", func(t *testing.T) {
		t.Parallel()

		c := newMemory[int](t)
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
		require.ErrorIs(t, c.Set(ctx, "k", 1, 0), cache.ErrClosed)
		require.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		c := newMemory[int](t, cache.WithMaxEntries(10))
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Go(func() { _ = c.Set(ctx, fmt.Sprintf("k%d", i%20), i, time.Minute) })
			wg.Go(func() { _, _ = c.Get(ctx, fmt.Sprintf("k%d", i%20)) })
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 10)
	})
}

func TestMemory_Janitor(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	clk := &clock{now: time.Unix(1_700_000_000, 0)}
	c := cache.NewMemory[string](cache.WithClock(clk.Now), cache.WithCleanupInterval(5*time.Millisecond))

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", "v", time.Second))
	require.NoError(t, c.Set(ctx, "long", "v", time.Hour))

	clk.Advance(2 * time.Second)
	require.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hit skips loader", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](t)
		require.NoError(t, c.Set(ctx, "key", "cached", time.Minute))

		v, err := cache.GetOrSet(ctx, c, "key", func(context.Context) (string, time.Duration, error) {
			t.Fatal("loader must not run on a hit")
			return "", 0, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "cached", v)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](t)
		v, err := cache.GetOrSet(ctx, c, "key-miss", func(context.Context) (string, time.Duration, error) {
			return "computed", time.Minute, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "computed", v)

		cached, err := c.Get(ctx, "key-miss")
		require.NoError(t, err)
		assert.Equal(t, "computed", cached)
	})

	t.Run("loader error is not cached", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](t)
		boom := errors.New("db down")
		_, err := cache.GetOrSet(ctx, c, "key-err", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		_, err = c.Get(ctx, "key-err")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("same key different value types", func(t *testing.T) {
		t.Parallel()

		strs := newMemory[string](t)
		ints := newMemory[int](t)

		var wg sync.WaitGroup
		wg.Go(func() {
			v, err := cache.GetOrSet(ctx, strs, "shared", func(context.Context) (string, time.Duration, error) {
				time.Sleep(10 * time.Millisecond)
				return "s", time.Minute, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "s", v)
		})
		wg.Go(func() {
			v, err := cache.GetOrSet(ctx, ints, "shared", func(context.Context) (int, time.Duration, error) {
				time.Sleep(10 * time.Millisecond)
				return 7, time.Minute, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		})
		wg.Wait()
	})

	t.Run("deduplicates concurrent misses", func(t *testing.T) {
		t.Parallel()

		c := newMemory[int](t)
		var calls atomic.Int64
		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				v, err := cache.GetOrSet(ctx, c, "dedup", func(context.Context) (int, time.Duration, error) {
					calls.Add(1)
					time.Sleep(10 * time.Millisecond)
					return 42, time.Minute, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 42, v)
			})
		}
		wg.Wait()

		assert.LessOrEqual(t, calls.Load(), int64(2))
	})

	t.Run("cancelled leader does not fail waiters", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](t)
		started := make(chan struct{})
		release := make(chan struct{})

		leaderCtx, cancelLeader := context.WithCancel(ctx)
		leaderErr := make(chan error, 1)
		go func() {
			_, err := cache.GetOrSet(leaderCtx, c, "posts", func(loadCtx context.Context) (string, time.Duration, error) {
				close(started)
				<-release
				if err := loadCtx.Err(); err != nil {
					return "", 0, err
				}
				return "fresh", time.Minute, nil
			})
			leaderErr <- err
		}()
		<-started

		waiterVal := make(chan string, 1)
		go func() {
			v, err := cache.GetOrSet(ctx, c, "posts", func(context.Context) (string, time.Duration, error) {
				return "second load", time.Minute, nil
			})
			assert.NoError(t, err)
			waiterVal <- v
		}()

		cancelLeader()
		require.ErrorIs(t, <-leaderErr, context.Canceled)

		close(release)
		assert.Equal(t, "fresh", <-waiterVal)

		cached, err := c.Get(ctx, "posts")
		require.NoError(t, err)
		assert.Equal(t, "fresh", cached)
	})
}
