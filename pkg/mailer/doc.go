// Package mailer renders markdown email templates and delivers them through
// a pluggable Sender.
//
// Templates are markdown files with optional YAML front matter:
//
//	---
//	Subject: Welcome, {{.Name}}
//	---
//	Hello **{{md .Name}}**,
//
//	[!button|Open dashboard](https://example.com)
//
// The body is executed twice. For the HTML part {{md .X}} escapes markdown
// control characters so user input cannot inject links or formatting; the
// result goes through goldmark and is wrapped in a layout. For the text part
// {{md .X}} is the identity and buttons become "Label: URL".
//
// Usage:
//
//	sender, err := resend.New(resend.Config{APIKey: key, SenderEmail: "noreply@example.com"})
//	if err != nil {
//		return err
//	}
//	m := mailer.New(sender, mailer.NewRenderer(templates.FS), mailer.Config{DefaultLayout: "base.html"})
//	err = m.Send(ctx, mailer.SendParams{To: "user@example.com", Template: "welcome.md", Data: data})
//
// The resend subpackage reports provider failures as *resend.APIError, whose
// message has the form "Failed to send email: {status} - {body}".
package mailer
