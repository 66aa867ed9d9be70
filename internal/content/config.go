package content

import "time"

// Config holds content and analytics settings.
type Config struct {
	AllowedEvents []string      `env:"ANALYTICS_ALLOWED_EVENTS" envDefault:"blog_post_view" envSeparator:","`
	PruneSchedule string        `env:"ANALYTICS_PRUNE_SCHEDULE" envDefault:"0 3 * * *"`
	CacheTTL      time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`
	Retention     time.Duration `env:"ANALYTICS_RETENTION" envDefault:"2160h"`
	RatePerSecond float64       `env:"ANALYTICS_RATE_PER_SECOND" envDefault:"2"`
	Burst         int           `env:"ANALYTICS_BURST" envDefault:"20"`
}
