package ratelimit

import "errors"

var (
	// ErrLimitExceeded is reported to clients whose hit was rejected.
	ErrLimitExceeded = errors.New("ratelimit: limit exceeded")

	// ErrClosed is returned by Allow after the limiter was closed.
	ErrClosed = errors.New("ratelimit: closed")

	// ErrInvalidPolicy is returned when a policy has a non-positive Max or Window.
	ErrInvalidPolicy = errors.New("ratelimit: invalid policy")

	// ErrBackend wraps storage failures so callers can decide to fail open.
	ErrBackend = errors.New("ratelimit: backend failure")
)
