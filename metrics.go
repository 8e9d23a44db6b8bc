package seqpack

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/seqpack/alphabet"
)

// Search operation names reported to MetricsCollector and the logger.
const (
	OpExact       = "exact"
	OpApproximate = "approximate"
	OpBothStrands = "both_strands"
	OpCount       = "count"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; package
// metric provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called after each sequence build.
	RecordBuild(kind alphabet.Kind, symbols int, duration time.Duration, err error)

	// RecordSearch is called after each search. op is one of the Op
	// constants, matches the number of results.
	RecordSearch(op string, matches int, duration time.Duration, err error)

	// RecordChunks is called with the number of chunks a search scanned.
	RecordChunks(count int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(alphabet.Kind, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(string, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordChunks(int)                                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildSymbols     atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchMatches    atomic.Int64
	SearchTotalNanos atomic.Int64
	ChunksScanned    atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ alphabet.Kind, symbols int, _ time.Duration, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildSymbols.Add(int64(symbols))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ string, matches int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	b.SearchMatches.Add(int64(matches))
}

// RecordChunks implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunks(count int) {
	b.ChunksScanned.Add(int64(count))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildSymbols:   b.BuildSymbols.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchMatches:  b.SearchMatches.Load(),
		SearchAvgNanos: b.getAvgSearchNanos(),
		ChunksScanned:  b.ChunksScanned.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildSymbols   int64
	SearchCount    int64
	SearchErrors   int64
	SearchMatches  int64
	SearchAvgNanos int64
	ChunksScanned  int64
}
