package mailer

import (
	"fmt"
	"strings"
)

// Tags are provider labels attached to a message.
type Tags map[string]string

// Address formats "Name <email>", or the bare email when name is empty.
// Quotes and angle brackets in the name are dropped so the result stays a
// single valid mailbox.
func Address(name, email string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '<', '>', '\r', '\n':
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a message ready for delivery.
type Email struct {
	Headers map[string]string
	Tags    Tags
	From    string // overrides the sender default
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	To      []string
}
