package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewStdoutHandler returns the JSON handler used for process output.
func NewStdoutHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup installs a JSON stdout logger as the slog default and returns its handler
// so it can later be combined with a database sink.
func Setup(appEnv string) slog.Handler {
	level := slog.LevelInfo
	if !strings.EqualFold(appEnv, "production") {
		level = slog.LevelDebug
	}
	handler := NewStdoutHandler(os.Stdout, level)
	slog.SetDefault(slog.New(handler))
	return handler
}
