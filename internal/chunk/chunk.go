// Package chunk splits a sequence into deterministic, symbol-aligned ranges
// for parallel scanning.
//
// Chunks are expressed in symbol offsets, never bytes, so no chunk can
// split a packed symbol regardless of its bit width. Each chunk owns the
// match starts in its primary region [Start, End) and may read ahead into
// the following overlap up to ScanEnd.
package chunk

import (
	"errors"
	"fmt"
	"math"
)

// L2Bytes is the per-core cache size estimate used to size default chunks.
const L2Bytes = 256 << 10

// ErrInvalidChunking is returned for a non-positive chunk size or a
// negative overlap.
var ErrInvalidChunking = errors.New("invalid chunking parameters")

// Chunk is one unit of parallel work.
type Chunk struct {
	Index   int
	Start   int
	End     int
	ScanEnd int
}

// Len returns the size of the primary region.
func (c Chunk) Len() int { return c.End - c.Start }

// ScanLen returns the size of the primary region plus overlap.
func (c Chunk) ScanLen() int { return c.ScanEnd - c.Start }

// Owns reports whether a match starting at pos belongs to this chunk.
func (c Chunk) Owns(pos int) bool { return pos >= c.Start && pos < c.End }

// String implements fmt.Stringer.
func (c Chunk) String() string {
	return fmt.Sprintf("chunk#%d[%d:%d|%d]", c.Index, c.Start, c.End, c.ScanEnd)
}

// Partition splits length symbols into ceil(length/target) chunks. The
// last chunk may be shorter. An empty sequence yields no chunks.
func Partition(length, target, overlap int) ([]Chunk, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidChunking, target)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d", ErrInvalidChunking, overlap)
	}
	if length <= 0 {
		return nil, nil
	}

	n := (length + target - 1) / target
	chunks := make([]Chunk, n)
	for i := range chunks {
		start := i * target
		end := min(start+target, length)
		chunks[i] = Chunk{
			Index:   i,
			Start:   start,
			End:     end,
			ScanEnd: end + min(overlap, length-end),
		}
	}
	return chunks, nil
}

// OverlapFor returns the smallest overlap that keeps every match of a
// pattern of patternLen symbols with up to maxEdits edits inside the chunk
// that owns its start. The result saturates at math.MaxInt.
func OverlapFor(patternLen, maxEdits int) int {
	if patternLen > 0 && maxEdits > math.MaxInt-patternLen {
		return math.MaxInt
	}
	return max(patternLen+maxEdits-1, 0)
}

// DefaultChunkSymbols returns the default chunk size for a symbol width:
// the number of symbols whose packed form fills L2Bytes.
func DefaultChunkSymbols(bitsPerSymbol uint) int {
	if bitsPerSymbol == 0 {
		return L2Bytes
	}
	return L2Bytes * 8 / int(bitsPerSymbol)
}
