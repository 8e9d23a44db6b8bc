// Package scheduler runs chunk-level work on a bounded worker pool and
// returns the results in chunk order.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/hupe1980/seqpack/internal/chunk"
	"golang.org/x/sync/errgroup"
)

// ErrCancelled is returned when the context is done before every chunk ran.
var ErrCancelled = errors.New("cancelled")

// Scheduler distributes chunks across a fixed number of workers.
// A Scheduler is stateless between calls and safe for concurrent use.
type Scheduler struct {
	workers  int
	parallel bool
}

// New creates a scheduler. workers <= 0 selects runtime.GOMAXPROCS(0).
// With parallel false every chunk runs inline on the calling goroutine.
func New(workers int, parallel bool) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{workers: workers, parallel: parallel}
}

// Workers returns the pool size.
func (s *Scheduler) Workers() int { return s.workers }

// Parallel reports whether chunks may run concurrently.
func (s *Scheduler) Parallel() bool { return s.parallel && s.workers > 1 }

// Submit runs fn for every chunk and returns the results in chunk order.
//
// The context is checked before each chunk starts; a chunk already running
// completes. If any chunk fails, chunks after it in order are skipped and
// the error of the lowest-indexed failing chunk is returned with no
// results, so serial and parallel runs fail identically.
func Submit[T any](ctx context.Context, s *Scheduler, chunks []chunk.Chunk, fn func(chunk.Chunk) (T, error)) ([]T, error) {
	results := make([]T, len(chunks))
	if !s.Parallel() || len(chunks) <= 1 {
		for i, c := range chunks {
			if err := ctx.Err(); err != nil {
				return nil, cancelled(err)
			}
			r, err := fn(c)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	errs := make([]error, len(chunks))
	var failed atomic.Int64
	failed.Store(math.MaxInt64)
	fail := func(i int, err error) {
		errs[i] = err
		for {
			cur := failed.Load()
			if int64(i) >= cur || failed.CompareAndSwap(cur, int64(i)) {
				return
			}
		}
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, c := range chunks {
		if int64(i) > failed.Load() {
			break
		}
		if err := ctx.Err(); err != nil {
			fail(i, cancelled(err))
			break
		}
		g.Go(func() error {
			if int64(i) > failed.Load() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				fail(i, cancelled(err))
				return nil
			}
			r, err := fn(c)
			if err != nil {
				fail(i, err)
				return nil
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}
