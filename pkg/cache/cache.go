package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
//
// TTL passed to Set: positive expires after the duration, zero uses the
// backend default, negative never expires.
type Cache[V any] interface {
	// Get returns ErrNotFound when the key is missing or expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func marshal[V any](v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshal[V any](data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

var group singleflight.Group

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key or computes it with fn.
// Concurrent misses for the same key on the same cache share one fn call.
// fn runs without the caller's cancellation so one caller going away does not
// fail the others; each caller still stops waiting when its own ctx is done.
// Errors from fn are returned and nothing is cached. A failing cache read is
// treated as a miss and a failing write is ignored.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	var zero V
	flightKey := fmt.Sprintf("%p:%s", c, key)
	loadCtx := context.WithoutCancel(ctx)

	ch := group.DoChan(flightKey, func() (any, error) {
		val, ttl, err := fn(loadCtx)
		if err != nil {
			return nil, err
		}
		_ = c.Set(loadCtx, key, val, ttl)
		return loaded[V]{val: val, ttl: ttl}, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	if res.Err != nil {
		return zero, res.Err
	}

	r, ok := res.Val.(loaded[V])
	if !ok {
		return zero, ErrUnmarshal
	}
	return r.val, nil
}
