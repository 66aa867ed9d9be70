package resend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

// Sender implements mailer.Sender on top of the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a Sender. An empty BaseURL keeps the library default.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	hc := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: trapTransport{next: http.DefaultTransport},
	}
	client := resend.NewCustomClient(hc, cfg.APIKey)

	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidURL, cfg.BaseURL)
		}
		client.BaseURL = u
	}

	return &Sender{client: client, config: cfg}, nil
}

// Send implements mailer.Sender. Non-2xx answers come back as *APIError.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = mailer.Address(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}
	for name, value := range email.Tags {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: value})
	}

	ctx, trap := withTrap(ctx)
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		if trap.code != 0 {
			return &APIError{StatusCode: trap.code, Status: trap.status, Body: trap.body, Err: err}
		}
		return fmt.Errorf("resend: %w", err)
	}

	return nil
}
