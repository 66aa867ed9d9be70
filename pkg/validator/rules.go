package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Rule codes reported in ValidationError.Code.
const (
	CodeRequired  = "required"
	CodeMinLength = "min_length"
	CodeMaxLength = "max_length"
	CodePattern   = "pattern"
	CodeOneOf     = "one_of"
	CodeMaxBytes  = "max_bytes"
)

// Rule is a single deferred check.
// Check returns true when the value is valid.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// First runs rules in order and stops at the first failure.
// The returned ValidationErrors holds exactly one element.
func First(rules ...Rule) error {
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			return ValidationErrors{r.Error}
		}
	}
	return nil
}

// WithMessage replaces the default message of a rule.
func WithMessage(r Rule, message string) Rule {
	r.Error.Message = message
	return r
}

// RequiredString fails when the value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:   field,
			Message: "is required",
			Code:    CodeRequired,
		},
	}
}

// MinLenString fails when the value has fewer than min characters (runes).
func MinLenString(field, value string, minLen int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= minLen },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters", minLen),
			Code:    CodeMinLength,
			Params:  map[string]any{"min": minLen},
		},
	}
}

// MaxLenString fails when the value has more than max characters (runes).
func MaxLenString(field, value string, maxLen int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= maxLen },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters", maxLen),
			Code:    CodeMaxLength,
			Params:  map[string]any{"max": maxLen},
		},
	}
}

// UTF16Len counts s in UTF-16 code units, the length a browser reports for
// the same string.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}

// MinLenUTF16 is MinLenString with the length counted by UTF16Len.
func MinLenUTF16(field, value string, minLen int) Rule {
	r := MinLenString(field, value, minLen)
	r.Check = func() bool { return UTF16Len(value) >= minLen }
	return r
}

// MaxLenUTF16 is MaxLenString with the length counted by UTF16Len.
func MaxLenUTF16(field, value string, maxLen int) Rule {
	r := MaxLenString(field, value, maxLen)
	r.Check = func() bool { return UTF16Len(value) <= maxLen }
	return r
}

// MatchString fails when the value does not match re.
func MatchString(field, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool { return re.MatchString(value) },
		Error: ValidationError{
			Field:   field,
			Message: "has invalid format",
			Code:    CodePattern,
		},
	}
}

// OneOfString fails when the value is not in allowed.
func OneOfString(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:   field,
			Message: "must be one of: " + strings.Join(allowed, ", "),
			Code:    CodeOneOf,
			Params:  map[string]any{"allowed": allowed},
		},
	}
}

// MaxBytes fails when data is longer than max bytes.
func MaxBytes(field string, data []byte, maxBytes int) Rule {
	return Rule{
		Check: func() bool { return len(data) <= maxBytes },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d bytes", maxBytes),
			Code:    CodeMaxBytes,
			Params:  map[string]any{"max": maxBytes},
		},
	}
}
