package contact

import "time"

// Delivery modes.
const (
	DeliverySync   = "sync"
	DeliveryOutbox = "outbox"
)

// Config holds contact form settings.
type Config struct {
	OwnerEmail        string        `env:"CONTACT_OWNER_EMAIL,required"`
	OwnerName         string        `env:"CONTACT_OWNER_NAME" envDefault:"Portfolio Owner"`
	OwnerTitle        string        `env:"CONTACT_OWNER_TITLE" envDefault:"Software Engineer"`
	NotifySenderName  string        `env:"CONTACT_NOTIFY_SENDER_NAME" envDefault:"Portfolio"`
	SiteURL           string        `env:"CONTACT_SITE_URL" envDefault:"http://localhost:5173"`
	LinkedInURL       string        `env:"CONTACT_LINKEDIN_URL" envDefault:"https://linkedin.com"`
	DeliveryMode      string        `env:"CONTACT_DELIVERY_MODE" envDefault:"sync"`
	RateLimitWindow   time.Duration `env:"CONTACT_RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax      int           `env:"CONTACT_RATE_LIMIT_MAX" envDefault:"5"`
	NotifyMaxAttempts int           `env:"CONTACT_NOTIFY_MAX_ATTEMPTS" envDefault:"10"`

	// LegacyErrorStatus reports validation failures as 500 instead of 400.
	LegacyErrorStatus bool `env:"CONTACT_LEGACY_ERROR_STATUS" envDefault:"false"`
}

// Outbox reports whether notifications go through background jobs.
func (c Config) Outbox() bool {
	return c.DeliveryMode == DeliveryOutbox
}
