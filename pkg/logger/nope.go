package logger

import "log/slog"

// NewNope returns a logger that discards everything. Used as the default
// when a component is built without a logger.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
