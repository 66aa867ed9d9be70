package contact

import (
	"context"

	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

const (
	templateOwner        = "owner_notification.md"
	templateConfirmation = "confirmation.md"
)

// Mailer sends templated email. *mailer.Mailer implements it.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// MailNotifier renders the contact emails and sends them through a Mailer.
type MailNotifier struct {
	mailer      Mailer
	cfg         Config
	senderEmail string
}

// NewMailNotifier creates a MailNotifier. senderEmail is the no-reply
// address both messages are sent from.
func NewMailNotifier(m Mailer, cfg Config, senderEmail string) *MailNotifier {
	return &MailNotifier{mailer: m, cfg: cfg, senderEmail: senderEmail}
}

type emailData struct {
	Name        string
	Email       string
	Subject     string
	Message     string
	OwnerName   string
	OwnerTitle  string
	SiteURL     string
	LinkedInURL string
}

func (n *MailNotifier) data(c repository.Contact) emailData {
	return emailData{
		Name:        c.Name,
		Email:       c.Email,
		Subject:     c.Subject,
		Message:     c.Message,
		OwnerName:   n.cfg.OwnerName,
		OwnerTitle:  n.cfg.OwnerTitle,
		SiteURL:     n.cfg.SiteURL,
		LinkedInURL: n.cfg.LinkedInURL,
	}
}

// NotifyOwner tells the site owner about a new submission. Replies go to the
// submitter.
func (n *MailNotifier) NotifyOwner(ctx context.Context, c repository.Contact) error {
	return n.mailer.Send(ctx, mailer.SendParams{
		To:       n.cfg.OwnerEmail,
		From:     mailer.Address(n.cfg.NotifySenderName, n.senderEmail),
		ReplyTo:  c.Email,
		Template: templateOwner,
		Data:     n.data(c),
		Tags:     mailer.Tags{"category": "contact_owner"},
	})
}

// SendConfirmation thanks the submitter.
func (n *MailNotifier) SendConfirmation(ctx context.Context, c repository.Contact) error {
	return n.mailer.Send(ctx, mailer.SendParams{
		To:       c.Email,
		From:     mailer.Address(n.cfg.OwnerName, n.senderEmail),
		Template: templateConfirmation,
		Data:     n.data(c),
		Tags:     mailer.Tags{"category": "contact_confirmation"},
	})
}
