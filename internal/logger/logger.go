// Package logger builds the process zerolog.Logger and carries request
// scoped loggers on the context.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the output of New.
type Config struct {
	Enabled bool
	Level   string
	// Format is "console" or "json".
	Format string
	// Output defaults to stderr.
	Output io.Writer
}

// New returns a logger for cfg. A disabled config yields a logger that drops
// everything; an unknown level falls back to info.
func New(cfg Config) zerolog.Logger {
	if !cfg.Enabled {
		return zerolog.Nop()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// WithContext attaches l to ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// InfoLog writes msg at info level through the context logger.
func InfoLog(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Info().Msg(msg)
}

// ErrorLog writes msg at error level through the context logger.
func ErrorLog(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Error().Msg(msg)
}
