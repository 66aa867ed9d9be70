package mailer

// Config holds mailer defaults, parsed from the environment.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Notification"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	ButtonColor     string `env:"MAILER_BUTTON_COLOR" envDefault:"#4f46e5"`
}
