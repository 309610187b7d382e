// Package logger provides the diagnostic logger used across acpiview.
//
// Diagnostics are separate from the table report: the report is written to the
// command's output stream while the logger writes to stderr.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Log formats accepted by FromFormat
const (
	FormatPretty = "pretty"
	FormatText   = "text"
	FormatJSON   = "json"
)

// Logger is the diagnostic sink handed to services and commands
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// FromFormat builds a Logger writing records at level and above to w. Unknown formats
// fall back to pretty.
func FromFormat(w io.Writer, format string, level slog.Level) Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = newPrettyHandler(w, opts)
	}
	return &slogLogger{logger: slog.New(handler)}
}

// Discard returns a Logger that drops every record
func Discard() Logger {
	return FromFormat(io.Discard, FormatText, slog.LevelError+1)
}

// FromContext returns the Logger stored by WithContext, or Discard
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return Discard()
}

// WithContext stores l in ctx
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

type loggerKey struct{}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// ParseLevel converts a configured level name. Unknown names select warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
