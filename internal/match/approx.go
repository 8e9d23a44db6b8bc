package match

import (
	"github.com/hupe1980/seqpack/internal/chunk"
	"github.com/hupe1980/seqpack/internal/pool"
)

// Approximate search reports, for every start position within the edit
// budget, the best alignment beginning there: lowest distance, then the
// length closest to the pattern length, then the shorter length.

// scanMyers runs Myers' bit-vector scan over the chunk to find end
// positions within the budget, marks the starts those ends can imply and
// verifies each candidate with the banded aligner.
func (s *Searcher) scanMyers(c chunk.Chunk) []Hit {
	m, k := s.pat.Len(), s.opts.MaxEdits
	n := s.seq.Len()
	owned := min(c.End, n)
	if owned <= c.Start {
		return nil
	}
	end := min(c.ScanEnd, owned-1+m+k, n)
	minLen := max(1, m-k)

	sc := pool.Get(owned - c.Start)
	defer pool.Put(sc)

	peq := &s.pat.peq
	high := uint64(1) << uint(m-1)
	pv, mv := ^uint64(0), uint64(0)
	score := m

	for j := c.Start; j < end; j++ {
		eq := peq[s.seq.Code(j)]
		xv := eq | mv
		xh := (((eq & pv) + pv) ^ pv) | eq
		ph := mv | ^(xh | pv)
		mh := pv & xh
		if ph&high != 0 {
			score++
		} else if mh&high != 0 {
			score--
		}
		ph <<= 1
		mh <<= 1
		pv = mh | ^(xv | ph)
		mv = ph & xv

		if score <= k {
			lo := max(j-m-k+1, c.Start)
			hi := min(j-minLen+1, owned-1)
			if lo <= hi {
				sc.MarkRange(lo-c.Start, hi-c.Start+1)
			}
		}
	}

	var hits []Hit
	sc.Each(func(i int) bool {
		pos := c.Start + i
		if length, dist, ok := s.align(sc, pos); ok {
			hits = append(hits, Hit{Pos: pos, Len: length, Dist: dist, Strand: s.opts.Strand})
		}
		return true
	})
	return hits
}

// scanBanded verifies every owned start; used for patterns longer than a
// machine word.
func (s *Searcher) scanBanded(c chunk.Chunk) []Hit {
	owned := min(c.End, s.seq.Len())
	if owned <= c.Start {
		return nil
	}
	sc := pool.Get(0)
	defer pool.Put(sc)

	var hits []Hit
	for pos := c.Start; pos < owned; pos++ {
		if length, dist, ok := s.align(sc, pos); ok {
			hits = append(hits, Hit{Pos: pos, Len: length, Dist: dist, Strand: s.opts.Strand})
		}
	}
	return hits
}

// align computes the best alignment of the whole pattern against a text
// prefix starting at pos, restricted to the band |i-j| <= MaxEdits.
func (s *Searcher) align(sc *pool.ScanContext, pos int) (length, dist int, ok bool) {
	codes := s.pat.codes
	m, k := len(codes), s.opts.MaxEdits
	textLen := min(m+k, s.seq.Len()-pos)
	minLen := max(1, m-k)
	if textLen < minLen {
		return 0, 0, false
	}

	inf := k + 1
	prev, curr := sc.Rows(textLen + 1)
	for j := range prev {
		prev[j] = min(j, inf)
	}

	for i := 1; i <= m; i++ {
		lo, hi := max(0, i-k), min(textLen, i+k)
		if lo > hi {
			return 0, 0, false
		}
		if lo == 0 {
			curr[0] = min(i, inf)
		} else {
			curr[lo-1] = inf
		}
		pc := codes[i-1]
		rowMin := inf
		if lo == 0 {
			rowMin = curr[0]
		}
		for j := max(lo, 1); j <= hi; j++ {
			d := prev[j-1]
			if !s.pat.match(s.seq.Code(pos+j-1), pc) {
				d++
			}
			if j <= i-1+k && prev[j]+1 < d {
				d = prev[j] + 1
			}
			if curr[j-1]+1 < d {
				d = curr[j-1] + 1
			}
			d = min(d, inf)
			curr[j] = d
			rowMin = min(rowMin, d)
		}
		if rowMin > k {
			return 0, 0, false
		}
		prev, curr = curr, prev
	}

	best, bestLen := inf, 0
	for j := max(minLen, m-k); j <= min(textLen, m+k); j++ {
		d := prev[j]
		if d < best || (d == best && closer(j, bestLen, m)) {
			best, bestLen = d, j
		}
	}
	if best > k {
		return 0, 0, false
	}
	return bestLen, best, true
}

// closer reports whether length a is a better tie-break than b for a
// pattern of length m.
func closer(a, b, m int) bool {
	da, db := abs(a-m), abs(b-m)
	if da != db {
		return da < db
	}
	return a < b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
