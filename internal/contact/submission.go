package contact

import (
	"encoding/json"
	"errors"
	"regexp"

	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
	"github.com/dmitrymomot/portfolio/pkg/validator"
)

// Field limits, counted in UTF-16 code units after trimming.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 255
	MaxSubjectLen = 200
	MinMessageLen = 10
	MaxMessageLen = 2000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is a normalized contact form payload.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string

	// emailBlank marks an email member that was present but only whitespace.
	// It fails the format rule rather than the required rule.
	emailBlank bool
}

// ParseSubmission decodes a JSON object and normalizes its fields. Members
// that are absent or not strings are treated as empty. Anything other than a
// JSON object is rejected.
func ParseSubmission(body []byte) (Submission, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Submission{}, invalidBody(err)
	}

	rawEmail := stringField(raw, "email")
	sub := Submission{
		Name:    sanitizer.Trim(stringField(raw, "name")),
		Email:   sanitizer.Email(rawEmail),
		Subject: sanitizer.Trim(stringField(raw, "subject")),
		Message: sanitizer.Trim(stringField(raw, "message")),
	}
	sub.emailBlank = rawEmail != "" && sub.Email == ""
	return sub, nil
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func invalidBody(cause error) error {
	verr := validator.ValidationErrors{{Message: msgInvalidBody}}
	if cause == nil {
		return errors.Join(ErrValidation, verr)
	}
	return errors.Join(ErrValidation, verr, cause)
}

// Validate checks fields in order and reports only the first failure.
func (s Submission) Validate() error {
	err := validator.First(
		validator.WithMessage(validator.RequiredString("name", s.Name), msgNameRequired),
		validator.WithMessage(validator.MaxLenUTF16("name", s.Name, MaxNameLen), msgNameTooLong),
		validator.WithMessage(s.emailRequired(), msgEmailRequired),
		validator.WithMessage(validator.MatchString("email", s.Email, emailPattern), msgEmailInvalid),
		validator.WithMessage(validator.MaxLenUTF16("email", s.Email, MaxEmailLen), msgEmailTooLong),
		validator.WithMessage(validator.RequiredString("subject", s.Subject), msgSubjectRequired),
		validator.WithMessage(validator.MaxLenUTF16("subject", s.Subject, MaxSubjectLen), msgSubjectTooLong),
		validator.WithMessage(validator.MinLenUTF16("message", s.Message, MinMessageLen), msgMessageTooShort),
		validator.WithMessage(validator.MaxLenUTF16("message", s.Message, MaxMessageLen), msgMessageTooLong),
	)
	if err != nil {
		return errors.Join(ErrValidation, err)
	}
	return nil
}

func (s Submission) emailRequired() validator.Rule {
	r := validator.RequiredString("email", s.Email)
	if s.emailBlank {
		r.Check = func() bool { return true }
	}
	return r
}

// validationMessage returns the first user-facing message carried by err.
func validationMessage(err error) string {
	if first, ok := validator.ExtractValidationErrors(err).First(); ok {
		return first.Message
	}
	return msgInvalidBody
}
