package logger

import "errors"

var (
	ErrFileSink   = errors.New("logger: failed to prepare log file")
	ErrSentryInit = errors.New("logger: failed to initialize sentry")
)
