package resend

import "time"

// Config holds Resend provider settings, parsed from the environment.
type Config struct {
	APIKey      string        `env:"RESEND_API_KEY"`
	SenderEmail string        `env:"RESEND_FROM_EMAIL" envDefault:"noreply@example.com"`
	SenderName  string        `env:"RESEND_FROM_NAME"`
	BaseURL     string        `env:"RESEND_BASE_URL"`
	Timeout     time.Duration `env:"RESEND_TIMEOUT" envDefault:"10s"`
}
