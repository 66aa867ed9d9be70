// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/portfolio/internal/contact"
	"github.com/dmitrymomot/portfolio/internal/content"
	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
	"github.com/dmitrymomot/portfolio/pkg/mailer/resend"
	"github.com/dmitrymomot/portfolio/pkg/redis"
)

// Config is everything `portfolio serve` needs.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	HTTP     web.ServerConfig
	Log      logger.Config
	Database db.Config
	Redis    redis.Config
	Resend   resend.Config
	Mailer   mailer.Config
	Contact  contact.Config
	Content  content.Config

	RateLimitMaxKeys int `env:"RATE_LIMIT_MAX_KEYS" envDefault:"10000"`
	JobMaxWorkers    int `env:"JOBS_MAX_WORKERS" envDefault:"10"`
}

// Migrate is the subset `portfolio migrate` needs.
type Migrate struct {
	Log      logger.Config
	Database db.Config
}

// Load reads .env files and parses the environment into T.
func Load[T any]() (*T, error) {
	if err := LoadDotenv(os.Getenv("APP_ENV")); err != nil {
		return nil, err
	}

	cfg := new(T)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// LoadDotenv loads .env.{appEnv} and then .env. Variables already set in the
// process win, and missing files are skipped.
func LoadDotenv(appEnv string) error {
	files := []string{".env"}
	if appEnv != "" {
		files = append([]string{".env." + appEnv}, files...)
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	switch c.Contact.DeliveryMode {
	case contact.DeliverySync, contact.DeliveryOutbox:
	default:
		return fmt.Errorf("config: CONTACT_DELIVERY_MODE must be %q or %q, got %q",
			contact.DeliverySync, contact.DeliveryOutbox, c.Contact.DeliveryMode)
	}
	if c.Contact.RateLimitMax <= 0 || c.Contact.RateLimitWindow <= 0 {
		return errors.New("config: contact rate limit window and max must be positive")
	}
	if c.Content.RatePerSecond <= 0 || c.Content.Burst <= 0 {
		return errors.New("config: analytics rate and burst must be positive")
	}
	return nil
}
