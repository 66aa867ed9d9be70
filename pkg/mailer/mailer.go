package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"

	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes one templated message.
type SendParams struct {
	Data     any
	Tags     Tags
	To       string
	Template string // e.g. "confirmation.md"
	Subject  string // overrides the template's Subject front matter
	Layout   string // overrides Config.DefaultLayout
	From     string
	ReplyTo  string
}

// Send renders params.Template and delivers it.
// Subject precedence: params.Subject, then the template's Subject front
// matter, then Config.FallbackSubject. The subject is itself a template
// executed with params.Data and collapsed to one line.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	res, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return err
	}

	subject := params.Subject
	if subject == "" {
		if s, ok := res.Metadata["Subject"].(string); ok {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}

	subject, err = renderSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:      []string{params.To},
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    res.HTML,
		Text:    res.Text,
		Tags:    params.Tags,
	})
}

// SendRaw delivers a pre-built message.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	switch {
	case len(email.To) == 0:
		return ErrNoRecipient
	case email.Subject == "":
		return ErrNoSubject
	case email.HTML == "":
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func renderSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Funcs(templateFuncs(false)).Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return sanitizer.SingleLine(buf.String()), nil
}
