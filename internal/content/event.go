package content

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/portfolio/pkg/validator"
)

// MaxMetadataBytes bounds the stored metadata document.
const MaxMetadataBytes = 4 << 10

// Event is a client analytics event.
type Event struct {
	Type     string
	Metadata json.RawMessage
}

type eventBody struct {
	Type     string          `json:"event_type"`
	Metadata json.RawMessage `json:"metadata"`
}

var emptyObject = json.RawMessage(`{}`)

// ParseEvent decodes {"event_type": "...", "metadata": {...}}. Missing or
// null metadata becomes {}; any other non-object metadata is rejected.
func ParseEvent(body []byte) (Event, error) {
	var b eventBody
	if err := json.Unmarshal(body, &b); err != nil {
		return Event{}, invalidEvent("body", "Invalid request body", err)
	}

	meta := bytes.TrimSpace(b.Metadata)
	switch {
	case len(meta) == 0, bytes.Equal(meta, []byte("null")):
		meta = emptyObject
	case meta[0] != '{':
		return Event{}, invalidEvent("metadata", "must be a JSON object", nil)
	}

	return Event{Type: b.Type, Metadata: meta}, nil
}

// Validate checks the event type against allowed and bounds the metadata.
func (e Event) Validate(allowed []string) error {
	err := validator.First(
		validator.RequiredString("event_type", e.Type),
		validator.OneOfString("event_type", e.Type, allowed...),
		validator.MaxBytes("metadata", e.Metadata, MaxMetadataBytes),
	)
	if err != nil {
		return errors.Join(ErrInvalidEvent, err)
	}
	return nil
}

func invalidEvent(field, message string, cause error) error {
	errs := []error{ErrInvalidEvent, validator.ValidationErrors{{Field: field, Message: message}}}
	if cause != nil {
		errs = append(errs, cause)
	}
	return errors.Join(errs...)
}

// eventMessage renders the first validation failure for clients.
func eventMessage(err error) string {
	first, ok := validator.ExtractValidationErrors(err).First()
	if !ok {
		return "Invalid request body"
	}
	if first.Field == "" || first.Field == "body" {
		return first.Message
	}
	return first.Error()
}
