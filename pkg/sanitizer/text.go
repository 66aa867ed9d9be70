package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace with the same set as
// ECMAScript String.prototype.trim: Unicode spaces, line terminators and the
// BOM, but not U+0085.
func Trim(s string) string {
	return strings.TrimFunc(s, isTrimSpace)
}

func isTrimSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// Text trims and normalizes to Unicode NFC, so that visually identical input
// has a single byte representation.
func Text(s string) string {
	return norm.NFC.String(Trim(s))
}

// Email trims and lower-cases. The bytes are otherwise kept as submitted.
func Email(s string) string {
	return strings.ToLower(Trim(s))
}

// SingleLine collapses every run of whitespace, including line breaks, into a
// single space. Used for values placed in message headers.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EscapeMarkdown backslash-escapes ASCII punctuation so the value renders as
// literal text inside a Markdown document. Line breaks are kept.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for _, r := range s {
		if isMarkdownPunct(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isMarkdownPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/',
		r >= ':' && r <= '@',
		r >= '[' && r <= '`',
		r >= '{' && r <= '~':
		return true
	}
	return false
}
