package seqpack

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/internal/scheduler"
	"github.com/hupe1980/seqpack/resource"
	"github.com/hupe1980/seqpack/sequence"
)

// Engine builds and searches packed sequences. An Engine holds no
// per-sequence state and is safe for concurrent use.
type Engine struct {
	opts    options
	sched   *scheduler.Scheduler
	rc      *resource.Controller
	logger  *Logger
	metrics MetricsCollector
}

// New creates an engine.
func New(optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)

	cfg := Config{
		ChunkSize:             o.chunkSize,
		Overlap:               o.overlap,
		Workers:               o.workers,
		MemoryLimitBytes:      o.memoryLimit,
		MaxConcurrentSearches: o.maxConcurrentSearches,
		IOLimitBytesPerSec:    o.ioLimit,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		opts:  o,
		sched: scheduler.New(o.workers, o.parallel),
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:      o.memoryLimit,
			MaxConcurrentSearches: o.maxConcurrentSearches,
			IOLimitBytesPerSec:    o.ioLimit,
		}),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

// Workers returns the worker pool size.
func (e *Engine) Workers() int { return e.sched.Workers() }

// Resources returns the engine's resource controller.
func (e *Engine) Resources() *resource.Controller { return e.rc }

// Build validates raw against the alphabet for kind and packs it. The
// packed bytes count against the memory limit until Release.
func (e *Engine) Build(ctx context.Context, kind alphabet.Kind, raw []byte) (*sequence.Packed, error) {
	start := time.Now()
	p, err := e.build(kind, raw)
	size := 0
	if p != nil {
		size = p.SizeBytes()
	}
	e.metrics.RecordBuild(kind, len(raw), time.Since(start), err)
	e.logger.LogBuild(ctx, kind, len(raw), size, err)
	return p, err
}

func (e *Engine) build(kind alphabet.Kind, raw []byte) (*sequence.Packed, error) {
	p, err := Build(kind, raw)
	if err != nil {
		return nil, err
	}
	if err := e.reserve(p); err != nil {
		return nil, err
	}
	return p, nil
}

// reserve accounts p against the memory limit.
func (e *Engine) reserve(p *sequence.Packed) error {
	size := int64(p.SizeBytes())
	if !e.rc.TryAcquireMemory(size) {
		return &ErrMemoryLimitExceeded{
			Requested: size,
			InUse:     e.rc.MemoryUsage(),
			Limit:     e.rc.Config().MemoryLimitBytes,
		}
	}
	return nil
}

// Release returns the memory accounted for a sequence built or loaded by
// this engine. Each sequence must be released at most once.
func (e *Engine) Release(p *sequence.Packed) {
	if p == nil {
		return
	}
	e.rc.ReleaseMemory(int64(p.SizeBytes()))
}

// MemoryUsage returns the packed bytes currently accounted.
func (e *Engine) MemoryUsage() int64 { return e.rc.MemoryUsage() }

// Build validates raw against the alphabet for kind and packs it.
func Build(kind alphabet.Kind, raw []byte) (*sequence.Packed, error) {
	a, ok := alphabet.ByKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	return sequence.FromSymbols(a, raw)
}

// BuildString is Build for string input.
func BuildString(kind alphabet.Kind, s string) (*sequence.Packed, error) {
	return Build(kind, []byte(s))
}
