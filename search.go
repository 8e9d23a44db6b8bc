package seqpack

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/seqpack/internal/chunk"
	"github.com/hupe1980/seqpack/internal/match"
	"github.com/hupe1980/seqpack/internal/scheduler"
	"github.com/hupe1980/seqpack/sequence"
)

// MatchResult is one match in absolute coordinates of the searched
// sequence. Reverse-strand matches report the forward-strand region whose
// reverse complement matched the pattern.
type MatchResult struct {
	Position     int             `json:"position"`
	Length       int             `json:"length"`
	EditDistance int             `json:"edit_distance"`
	Strand       sequence.Strand `json:"strand"`
}

// End returns the exclusive end position.
func (r MatchResult) End() int { return r.Position + r.Length }

// MatchSet is a search result ordered by position, then edit distance,
// then length.
type MatchSet []MatchResult

// Positions returns the distinct start positions as a bitmap.
func (ms MatchSet) Positions() *roaring64.Bitmap {
	bm := roaring64.New()
	for _, r := range ms {
		bm.Add(uint64(r.Position))
	}
	return bm
}

// Starts returns the start positions in result order.
func (ms MatchSet) Starts() []int {
	out := make([]int, len(ms))
	for i, r := range ms {
		out[i] = r.Position
	}
	return out
}

// FindExact reports every occurrence of pattern in seq, overlapping
// occurrences included.
func (e *Engine) FindExact(ctx context.Context, seq *sequence.Packed, pattern []byte) (MatchSet, error) {
	return e.search(ctx, OpExact, seq, pattern, 0, false)
}

// FindApproximate reports every start position where pattern aligns with
// at most maxEdits substitutions, insertions or deletions. Each start is
// reported once, with its best alignment: lowest edit distance, then the
// length closest to the pattern, then the shorter length.
func (e *Engine) FindApproximate(ctx context.Context, seq *sequence.Packed, pattern []byte, maxEdits int) (MatchSet, error) {
	return e.search(ctx, OpApproximate, seq, pattern, maxEdits, false)
}

// FindBothStrands searches seq for pattern and for its reverse complement.
// Reverse-strand results carry Strand Reverse and forward coordinates.
// maxEdits 0 selects exact search.
func (e *Engine) FindBothStrands(ctx context.Context, seq *sequence.Packed, pattern []byte, maxEdits int) (MatchSet, error) {
	return e.search(ctx, OpBothStrands, seq, pattern, maxEdits, true)
}

// Count returns the number of matches FindApproximate (or FindExact when
// maxEdits is 0) would report.
func (e *Engine) Count(ctx context.Context, seq *sequence.Packed, pattern []byte, maxEdits int) (int, error) {
	ms, err := e.search(ctx, OpCount, seq, pattern, maxEdits, false)
	return len(ms), err
}

func (e *Engine) search(ctx context.Context, op string, seq *sequence.Packed, pattern []byte, maxEdits int, bothStrands bool) (MatchSet, error) {
	start := time.Now()
	ms, chunks, err := e.runSearch(ctx, seq, pattern, maxEdits, bothStrands)
	err = translateError(err)
	if err != nil {
		ms = nil
	}

	e.metrics.RecordChunks(chunks)
	e.metrics.RecordSearch(op, len(ms), time.Since(start), err)
	e.logger.LogSearch(ctx, op, len(pattern), maxEdits, chunks, len(ms), err)
	return ms, err
}

func (e *Engine) runSearch(ctx context.Context, seq *sequence.Packed, pattern []byte, maxEdits int, bothStrands bool) (MatchSet, int, error) {
	if seq == nil {
		return nil, 0, fmt.Errorf("%w: nil sequence", ErrInvalidArgument)
	}
	if maxEdits < 0 {
		return nil, 0, fmt.Errorf("%w: max edits %d", ErrInvalidArgument, maxEdits)
	}

	pat, err := match.Compile(seq.Alphabet(), pattern, e.opts.ambiguity)
	if err != nil {
		return nil, 0, err
	}
	// No alignment needs more edits than the longer of pattern and
	// sequence, and a smaller budget keeps the window arithmetic in range.
	maxEdits = min(maxEdits, max(pat.Len(), seq.Len()))

	searchers := []*match.Searcher{e.searcher(seq, pat, maxEdits, sequence.Forward)}
	if bothStrands {
		rc, err := pat.ReverseComplement()
		if err != nil {
			return nil, 0, err
		}
		searchers = append(searchers, e.searcher(seq, rc, maxEdits, sequence.Reverse))
	}

	if pat.Len() > seq.Len() {
		return MatchSet{}, 0, nil
	}

	if err := e.rc.AcquireSearch(ctx); err != nil {
		return nil, 0, err
	}
	defer e.rc.ReleaseSearch()

	chunks, err := e.partition(seq, searchers[0].Overlap())
	if err != nil {
		return nil, 0, err
	}

	parts, err := scheduler.Submit(ctx, e.sched, chunks, func(c chunk.Chunk) ([]match.Hit, error) {
		if len(searchers) == 1 {
			return searchers[0].Scan(c), nil
		}
		var hits []match.Hit
		for _, s := range searchers {
			hits = append(hits, s.Scan(c)...)
		}
		return hits, nil
	})
	if err != nil {
		return nil, len(chunks), err
	}

	hits := match.Merge(parts...)
	ms := make(MatchSet, len(hits))
	for i, h := range hits {
		ms[i] = MatchResult{Position: h.Pos, Length: h.Len, EditDistance: h.Dist, Strand: h.Strand}
	}
	return ms, len(chunks), nil
}

func (e *Engine) searcher(seq *sequence.Packed, pat *match.Pattern, maxEdits int, strand sequence.Strand) *match.Searcher {
	return match.NewSearcher(seq, pat, match.Options{
		MaxEdits:     maxEdits,
		WordParallel: e.opts.wordParallel,
		Strand:       strand,
	})
}

// partition splits seq for a search needing at least minOverlap symbols of
// read-ahead.
func (e *Engine) partition(seq *sequence.Packed, minOverlap int) ([]chunk.Chunk, error) {
	size := e.opts.chunkSize
	if size == 0 {
		size = chunk.DefaultChunkSymbols(seq.BitsPerSymbol())
	}
	return chunk.Partition(seq.Len(), size, max(e.opts.overlap, minOverlap))
}
