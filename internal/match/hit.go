package match

import (
	"cmp"
	"slices"

	"github.com/hupe1980/seqpack/sequence"
)

// Hit is one match in absolute sequence coordinates. For reverse-strand
// hits Pos and Len describe the forward-strand region whose reverse
// complement matched.
type Hit struct {
	Pos    int
	Len    int
	Dist   int
	Strand sequence.Strand
}

// Merge flattens per-chunk hits into one slice ordered by position, then
// edit distance, then length, and drops duplicates with the same position,
// length and strand.
func Merge(parts ...[]Hit) []Hit {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	if total == 0 {
		return nil
	}

	all := make([]Hit, 0, total)
	for _, p := range parts {
		all = append(all, p...)
	}
	slices.SortFunc(all, compareHits)

	out := all[:0]
	run := 0 // index in out of the first hit at the current position
	for _, h := range all {
		if len(out) > 0 && out[len(out)-1].Pos != h.Pos {
			run = len(out)
		}
		if !containsHit(out[run:], h) {
			out = append(out, h)
		}
	}
	return out
}

func compareHits(a, b Hit) int {
	return cmp.Or(
		cmp.Compare(a.Pos, b.Pos),
		cmp.Compare(a.Dist, b.Dist),
		cmp.Compare(a.Len, b.Len),
		cmp.Compare(a.Strand, b.Strand),
	)
}

func containsHit(run []Hit, h Hit) bool {
	for _, o := range run {
		if o.Len == h.Len && o.Strand == h.Strand {
			return true
		}
	}
	return false
}
