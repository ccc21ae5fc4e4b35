package simdbmk

import (
	"log/slog"
	"runtime"
)

type options struct {
	probe            func() int
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures a Searcher.
type Option func(*options)

// DefaultProbe reports the number of goroutines that can run in parallel.
func DefaultProbe() int {
	return runtime.GOMAXPROCS(0)
}

func defaultOptions() options {
	return options{
		probe:            DefaultProbe,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// WithWorkers fixes the number of workers, one chunk each.
//
// n <= 0 restores DefaultProbe.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			o.probe = DefaultProbe
			return
		}
		o.probe = func() int { return n }
	}
}

// WithProbe sets the capability probe consulted on every search for the
// worker count. A probe returning less than 1 makes searches fail with
// ErrInvalidWorkerCount.
//
// If nil is passed, DefaultProbe is used.
func WithProbe(probe func() int) Option {
	return func(o *options) {
		if probe == nil {
			probe = DefaultProbe
		}
		o.probe = probe
	}
}

// WithLogger configures structured logging for searches.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := simdbmk.NewJSONLogger(slog.LevelDebug)
//	s := simdbmk.New(simdbmk.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for searches.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &simdbmk.BasicMetricsCollector{}
//	s := simdbmk.New(simdbmk.WithMetricsCollector(metrics))
//	// ... search ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
