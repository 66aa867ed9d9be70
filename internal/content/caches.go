package content

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/pkg/cache"
)

// NewMemoryCaches keeps content in process memory.
func NewMemoryCaches(ttl time.Duration) Caches {
	return Caches{
		Posts:        cache.NewMemory[[]repository.BlogPost](cache.WithDefaultTTL(ttl)),
		Post:         cache.NewMemory[repository.BlogPost](cache.WithDefaultTTL(ttl), cache.WithMaxEntries(1000)),
		Testimonials: cache.NewMemory[[]repository.Testimonial](cache.WithDefaultTTL(ttl)),
	}
}

// NewRedisCaches shares content between instances through Redis.
func NewRedisCaches(client redis.UniversalClient, ttl time.Duration) Caches {
	return Caches{
		Posts:        cache.NewRedis[[]repository.BlogPost](client, cache.WithPrefix("content"), cache.WithRedisDefaultTTL(ttl)),
		Post:         cache.NewRedis[repository.BlogPost](client, cache.WithPrefix("content"), cache.WithRedisDefaultTTL(ttl)),
		Testimonials: cache.NewRedis[[]repository.Testimonial](client, cache.WithPrefix("content"), cache.WithRedisDefaultTTL(ttl)),
	}
}
