package content

import "errors"

var (
	ErrPostNotFound = errors.New("content: post not found")
	ErrInvalidEvent = errors.New("content: invalid event")
	ErrStore        = errors.New("content: store failure")
)
