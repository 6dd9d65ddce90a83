// Package logging builds the slog loggers used by the tableskema CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a text logger writing to stderr so that cast rows and generated
// descriptors keep stdout to themselves. Error values logged under "error"
// are flattened to their message.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				if err, ok := a.Value.Any().(error); ok {
					a.Value = slog.StringValue(err.Error())
				}
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
