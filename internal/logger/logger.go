// Package logger configures the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger is the shared structured logger. It is safe to use before Configure.
	Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	level  = new(slog.LevelVar)
)

// Options controls the output of the logger
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// Configure replaces the shared logger and installs it as the slog default.
// An invalid level falls back to info and is reported in the returned error.
func Configure(opts Options) error {
	lvl, err := ParseLevel(opts.Level)
	level.Set(lvl)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	return err
}

// ParseLevel maps a level name to a slog level
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", value)
	}
}

// With returns a child logger carrying a component attribute
func With(component string) *slog.Logger {
	return Logger.With("component", component)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
