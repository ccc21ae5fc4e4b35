package simdbmk

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting search metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordSearch is called after each search. mode is the effective scan
	// mode, workers the number of chunks, matches the returned count and
	// err is nil if successful.
	RecordSearch(mode Mode, workers, matches int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSearch(Mode, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	ScalarSearches   atomic.Int64
	VectorSearches   atomic.Int64
	Matches          atomic.Int64
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(mode Mode, workers, matches int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	switch mode {
	case ModeScalar:
		b.ScalarSearches.Add(1)
	case ModeVectorized:
		b.VectorSearches.Add(1)
	}
	b.Matches.Add(int64(matches))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.SearchCount.Load()
	var avg int64
	if count > 0 {
		avg = b.SearchTotalNanos.Load() / count
	}
	return BasicMetricsStats{
		SearchCount:    count,
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: avg,
		ScalarSearches: b.ScalarSearches.Load(),
		VectorSearches: b.VectorSearches.Load(),
		Matches:        b.Matches.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	ScalarSearches int64
	VectorSearches int64
	Matches        int64
}
