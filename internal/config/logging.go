package config

import (
	"io"
	"log/slog"
)

// Logger returns a structured logger writing to w: text in development,
// JSON otherwise.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if c.IsDev() {
		return slog.New(slog.NewTextHandler(w, nil))
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}
