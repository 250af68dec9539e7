// Package logger provides the application's structured logger, a thin
// slog wrapper with a fatal level for startup failures.
package logger

import (
	"log/slog"
	"os"
)

// Logger emits structured text records to stdout.
type Logger struct {
	*slog.Logger
}

// New returns a Logger filtering records below the given slog level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal logs at error level and terminates the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
