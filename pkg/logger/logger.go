package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const serviceName = "daily-event-insurance"

// New returns a production-friendly structured logger writing JSON to stdout.
// No business logic should depend on logging implementation details.
func New(appEnv string) *slog.Logger {
	return NewWithWriter(appEnv, os.Stdout)
}

// NewWithWriter is New with an explicit sink; the CLI logs to stderr.
func NewWithWriter(appEnv string, w io.Writer) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level(appEnv)})
	return slog.New(h).With("service", serviceName, "env", appEnv)
}

// Level is debug for local and dev, info everywhere else.
func Level(appEnv string) slog.Level {
	if appEnv == "local" || appEnv == "dev" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

type ctxKey struct{}

// With stores a logger in context.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From gets a logger from context, falling back to slog.Default().
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
