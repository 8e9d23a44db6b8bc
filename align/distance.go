package align

import (
	"github.com/hupe1980/seqpack/internal/pool"
	"github.com/hupe1980/seqpack/sequence"
)

// EditDistance returns the Levenshtein distance between a and b: the
// fewest substitutions, insertions and deletions turning one into the
// other. Codes are compared exactly. Empty sequences are allowed.
func EditDistance(a, b *sequence.Packed) (int, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	n, w := a.Len(), b.Len()
	if n == 0 || w == 0 {
		return max(n, w), nil
	}

	sc := pool.Get(0)
	defer pool.Put(sc)
	prev, curr := sc.Rows(w + 1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		curr[0] = i
		ca := a.Code(i - 1)
		for j := 1; j <= w; j++ {
			d := prev[j-1]
			if b.Code(j-1) != ca {
				d++
			}
			curr[j] = min(d, prev[j]+1, curr[j-1]+1)
		}
		prev, curr = curr, prev
	}
	return prev[w], nil
}
