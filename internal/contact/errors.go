package contact

import "errors"

var (
	ErrValidation  = errors.New("contact: validation failed")
	ErrPersistence = errors.New("contact: failed to save submission")
	ErrDelivery    = errors.New("contact: failed to send email")
	ErrNoEnqueuer  = errors.New("contact: no job enqueuer in context")
)

// User-facing messages.
const (
	msgInvalidBody     = "Invalid request body"
	msgSaveFailed      = "Failed to save contact form"
	msgDeliveryFailed  = "Failed to send email"
	msgSuccess         = "Email sent successfully"
	msgNameRequired    = "Name is required"
	msgNameTooLong     = "Name must be less than 100 characters"
	msgEmailRequired   = "Email is required"
	msgEmailInvalid    = "Invalid email format"
	msgEmailTooLong    = "Email must be less than 255 characters"
	msgSubjectRequired = "Subject is required"
	msgSubjectTooLong  = "Subject must be less than 200 characters"
	msgMessageTooShort = "Message must be at least 10 characters"
	msgMessageTooLong  = "Message must be less than 2000 characters"
)
