package seqpack

import (
	"log/slog"

	"github.com/hupe1980/seqpack/internal/simd"
)

type options struct {
	chunkSize             int
	overlap               int
	workers               int
	parallel              bool
	ambiguity             bool
	wordParallel          bool
	memoryLimit           int64
	maxConcurrentSearches int64
	ioLimit               int64
	metricsCollector      MetricsCollector
	logger                *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithChunkSize sets the number of symbols per chunk.
// Zero derives the size from the alphabet width and an L2 cache estimate.
func WithChunkSize(symbols int) Option {
	return func(o *options) {
		o.chunkSize = symbols
	}
}

// WithOverlap sets the minimum overlap between chunks in symbols. Searches
// always raise it to the longest possible match minus one, so this only
// matters for callers that need a wider read-ahead.
func WithOverlap(symbols int) Option {
	return func(o *options) {
		o.overlap = symbols
	}
}

// WithWorkers sets the worker pool size. Zero uses runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithParallel enables or disables parallel chunk scanning. Results are
// identical either way.
func WithParallel(enabled bool) Option {
	return func(o *options) {
		o.parallel = enabled
	}
}

// WithAmbiguityMatching makes IUPAC codes match any code sharing a base
// (N matches A, R matches G). Off by default: codes match only themselves.
func WithAmbiguityMatching(enabled bool) Option {
	return func(o *options) {
		o.ambiguity = enabled
	}
}

// WithWordParallel enables or disables the SWAR exact-search filter.
// The default follows simd.WordParallel (SEQPACK_SIMD overrides it).
func WithWordParallel(enabled bool) Option {
	return func(o *options) {
		o.wordParallel = enabled
	}
}

// WithMemoryLimit caps the packed bytes of sequences built by the engine.
// Zero disables the limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxConcurrentSearches caps the searches an engine runs at once;
// further calls wait for a slot. Zero disables the limit.
func WithMaxConcurrentSearches(n int64) Option {
	return func(o *options) {
		o.maxConcurrentSearches = n
	}
}

// WithIOLimit caps persistence transfer throughput in bytes per second.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithMetricsCollector configures metrics collection for monitoring.
//
// Example with basic metrics:
//
//	metrics := &seqpack.BasicMetricsCollector{}
//	eng, _ := seqpack.New(seqpack.WithMetricsCollector(metrics))
//	// ... use eng ...
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

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
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

// WithConfig applies every field of cfg.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.chunkSize = cfg.ChunkSize
		o.overlap = cfg.Overlap
		o.workers = cfg.Workers
		o.parallel = cfg.Parallel
		o.ambiguity = cfg.AmbiguityMatching
		o.wordParallel = cfg.WordParallel
		o.memoryLimit = cfg.MemoryLimitBytes
		o.maxConcurrentSearches = cfg.MaxConcurrentSearches
		o.ioLimit = cfg.IOLimitBytesPerSec
		if cfg.LogLevel != "" {
			var level slog.Level
			if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
				o.logger = NewTextLogger(level)
			}
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		parallel:         true,
		wordParallel:     simd.WordParallel(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
