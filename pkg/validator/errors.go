package validator

import (
	"errors"
	"strings"
)

// ErrValidation is the sentinel matched by errors.Is for every ValidationErrors value.
var ErrValidation = errors.New("validator: validation failed")

// ValidationError describes a single failed rule.
type ValidationError struct {
	// Params holds the rule arguments, e.g. {"max": 100}.
	Params  map[string]any
	Field   string
	Message string
	// Code names the failed rule (CodeRequired, CodeMaxLength, ...).
	Code string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors is an ordered list of failed rules.
// Order follows the order in which rules were applied.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is reports ErrValidation so callers can use errors.Is without type assertions.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// First returns the earliest recorded error.
func (v ValidationErrors) First() (ValidationError, bool) {
	if len(v) == 0 {
		return ValidationError{}, false
	}
	return v[0], true
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
