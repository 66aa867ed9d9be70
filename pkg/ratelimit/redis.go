package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// The counter keeps growing past Max while the window is open, but the TTL is
// only set on the first hit, so rejected hits never extend the window.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisOption configures the Redis limiter.
type RedisOption func(*Redis)

// WithRedisPrefix sets the key prefix. Default: "ratelimit".
func WithRedisPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = strings.Trim(prefix, ":")
	}
}

// WithRedisClock overrides the time source used to compute ResetAt.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(r *Redis) {
		if now != nil {
			r.now = now
		}
	}
}

// Redis is a fixed-window limiter shared across processes through Redis.
// Each key is a counter with a TTL equal to the window.
type Redis struct {
	client redis.UniversalClient
	now    func() time.Time
	prefix string
	policy Policy
}

// NewRedis creates a Redis-backed limiter. It panics on an invalid policy.
func NewRedis(client redis.UniversalClient, p Policy, opts ...RedisOption) *Redis {
	if err := p.Validate(); err != nil {
		panic(err)
	}

	r := &Redis{
		client: client,
		now:    time.Now,
		prefix: "ratelimit",
		policy: p,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allow implements Limiter.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := fixedWindowScript.Run(ctx, r.client,
		[]string{r.key(key)},
		r.policy.Window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Decision{}, errors.Join(ErrBackend, err)
	}
	if len(res) != 2 {
		return Decision{}, errors.Join(ErrBackend, errors.New("unexpected script reply"))
	}

	count := int(res[0])
	resetAt := r.now().Add(time.Duration(res[1]) * time.Millisecond)

	if count > r.policy.Max {
		return decide(r.policy, r.policy.Max, resetAt, false), nil
	}
	return decide(r.policy, count, resetAt, true), nil
}

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

var _ Limiter = (*Redis)(nil)
