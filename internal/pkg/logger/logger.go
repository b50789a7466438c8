package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
	mu            sync.RWMutex
)

// Options configures the structured logger.
type Options struct {
	// Level is the minimum level emitted.
	Level slog.Level

	// Format is "json" (default) or "text".
	Format string

	// Output defaults to os.Stderr. Stdout is reserved for reports.
	Output io.Writer
}

// Initialize sets up the structured logger with defaults if Configure has
// not been called yet.
func Initialize() {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if defaultLogger == nil {
			defaultLogger = newLogger(Options{Level: slog.LevelInfo})
		}
	})
}

// Configure replaces the default logger.
func Configure(opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown log format: %q", opts.Format)
	}

	l := newLogger(opts)
	once.Do(func() {})
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	return nil
}

func newLogger(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: false,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.New(handler)
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Get returns the default structured logger
func Get() *slog.Logger {
	Initialize() // Always call Initialize, sync.Once ensures it only runs once
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Info logs an info level message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// InfoContext logs an info level message with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

// Warn logs a warning level message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// WarnContext logs a warning level message with context
func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

// Error logs an error level message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// ErrorContext logs an error level message with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// Debug logs a debug level message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// DebugContext logs a debug level message with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	Get().DebugContext(ctx, msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

// WithGroup returns a logger with the given group name
func WithGroup(name string) *slog.Logger {
	return Get().WithGroup(name)
}
