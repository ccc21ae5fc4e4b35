package simdbmk

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with search-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000),
		})),
	}
}

// WithMode adds a scan mode field to the logger.
func (l *Logger) WithMode(m Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", m.String()),
	}
}

// WithWorkers adds a worker count field to the logger.
func (l *Logger) WithWorkers(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", n),
	}
}

// WithK adds a match cap field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// LogSearch logs a completed or failed search.
func (l *Logger) LogSearch(req Request, res *Result, d time.Duration, err error) {
	if err != nil {
		l.Error("search failed",
			"mode", req.Mode.String(),
			"start", req.Start,
			"end", req.End,
			"step", req.Step,
			"k", req.K,
			"error", err,
		)
		return
	}
	l.Debug("search completed",
		"mode", res.Mode.String(),
		"workers", res.Workers,
		"range", req.End-req.Start,
		"k", req.K,
		"matches", res.Count(),
		"duration", d,
	)
}

// LogFallback logs a vectorized request served by the scalar scanner.
func (l *Logger) LogFallback(req Request, reason string) {
	l.Debug("vectorized scan unavailable, using scalar",
		"reason", reason,
		"start", req.Start,
		"step", req.Step,
	)
}
