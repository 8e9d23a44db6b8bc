// Package pool provides object pools for allocation-free search scans.
// Uses sync.Pool for memory reuse and bitsets for candidate tracking.
package pool

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

const (
	// DefaultCandidates is the initial bitset capacity, one bit per start
	// position of a default-sized DNA chunk.
	DefaultCandidates = 1 << 20

	// maxRetained caps the bitset capacity returned to the pool.
	maxRetained = DefaultCandidates * 8
)

// ScanContext holds reusable buffers for scanning one chunk.
type ScanContext struct {
	// Candidates marks chunk-relative start positions that passed a filter.
	// Its length covers the positions requested by the last Reset.
	Candidates *bitset.BitSet

	// Row buffers for dynamic-programming verification.
	Prev []int
	Curr []int

	words []uint64
}

var scanContextPool = sync.Pool{
	New: func() interface{} {
		return &ScanContext{
			Candidates: new(bitset.BitSet),
			words:      make([]uint64, 0, DefaultCandidates/64),
		}
	},
}

// Get retrieves a ScanContext sized for n candidate positions.
func Get(n int) *ScanContext {
	sc := scanContextPool.Get().(*ScanContext)
	sc.Reset(n)
	return sc
}

// Put returns a ScanContext to the pool for reuse.
func Put(sc *ScanContext) {
	if cap(sc.words) > maxRetained/64 {
		sc.words = make([]uint64, 0, DefaultCandidates/64)
		sc.Candidates.SetBitsetFrom(sc.words)
	}
	scanContextPool.Put(sc)
}

// Reset clears the context and sizes the candidate set to n positions.
// Only the words covering n are cleared.
func (sc *ScanContext) Reset(n int) {
	if n < 0 {
		n = 0
	}
	w := (n + 63) / 64
	if cap(sc.words) < w {
		sc.words = make([]uint64, w)
	} else {
		sc.words = sc.words[:w]
		clear(sc.words)
	}
	if sc.Candidates == nil {
		sc.Candidates = new(bitset.BitSet)
	}
	sc.Candidates.SetBitsetFrom(sc.words)
	sc.Prev = sc.Prev[:0]
	sc.Curr = sc.Curr[:0]
}

// Mark flags chunk-relative position i as a candidate.
func (sc *ScanContext) Mark(i int) {
	sc.Candidates.Set(uint(i))
}

// MarkRange flags [lo, hi) as candidates.
func (sc *ScanContext) MarkRange(lo, hi int) {
	for i := lo; i < hi; i++ {
		sc.Candidates.Set(uint(i))
	}
}

// Each calls fn for every candidate in ascending order until fn returns false.
func (sc *ScanContext) Each(fn func(i int) bool) {
	for i, ok := sc.Candidates.NextSet(0); ok; i, ok = sc.Candidates.NextSet(i + 1) {
		if !fn(int(i)) {
			return
		}
	}
}

// Count returns the number of candidates.
func (sc *ScanContext) Count() int {
	return int(sc.Candidates.Count())
}

// Rows returns two DP rows of length n, reusing the pooled buffers.
func (sc *ScanContext) Rows(n int) (prev, curr []int) {
	if cap(sc.Prev) < n {
		sc.Prev = make([]int, n)
		sc.Curr = make([]int, n)
	}
	sc.Prev = sc.Prev[:n]
	sc.Curr = sc.Curr[:n]
	return sc.Prev, sc.Curr
}
