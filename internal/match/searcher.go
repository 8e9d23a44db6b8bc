package match

import (
	"github.com/hupe1980/seqpack/internal/chunk"
	"github.com/hupe1980/seqpack/internal/pool"
	"github.com/hupe1980/seqpack/internal/simd"
	"github.com/hupe1980/seqpack/sequence"
)

// Algorithm identifies the kernel a Searcher runs per chunk.
type Algorithm uint8

const (
	// KMP scans codes with a failure function.
	KMP Algorithm = iota
	// Filtered runs the word-parallel filter and verifies candidates.
	Filtered
	// Naive compares every window; used for wildcard exact search.
	Naive
	// Myers runs the bit-parallel edit-distance scan and verifies candidates.
	Myers
	// Banded verifies every start with a banded dynamic program.
	Banded
)

func (a Algorithm) String() string {
	switch a {
	case KMP:
		return "kmp"
	case Filtered:
		return "filtered"
	case Naive:
		return "naive"
	case Myers:
		return "myers"
	case Banded:
		return "banded"
	default:
		return "unknown"
	}
}

// Options configures a Searcher.
type Options struct {
	// MaxEdits is the edit budget; zero selects exact search.
	MaxEdits int
	// WordParallel enables the SWAR filter for 2- and 4-bit alphabets.
	WordParallel bool
	// Strand tags the produced hits.
	Strand sequence.Strand
}

// Searcher runs one pattern against one sequence, chunk by chunk.
// It holds no mutable state and may be shared across goroutines.
type Searcher struct {
	seq  *sequence.Packed
	pat  *Pattern
	opts Options
	algo Algorithm
}

// NewSearcher selects the kernel for seq, pat and opts.
// pat must be compiled against seq's alphabet.
func NewSearcher(seq *sequence.Packed, pat *Pattern, opts Options) *Searcher {
	s := &Searcher{seq: seq, pat: pat, opts: opts}
	s.algo = s.selectAlgorithm()
	return s
}

func (s *Searcher) selectAlgorithm() Algorithm {
	if s.opts.MaxEdits > 0 {
		if s.pat.Len() <= MaxBitParallel {
			return Myers
		}
		return Banded
	}
	if s.pat.wildcard {
		return Naive
	}
	if bits := s.seq.BitsPerSymbol(); s.opts.WordParallel && (bits == 2 || bits == 4) {
		return Filtered
	}
	return KMP
}

// Algorithm returns the selected kernel.
func (s *Searcher) Algorithm() Algorithm { return s.algo }

// Overlap returns the chunk overlap this search needs.
func (s *Searcher) Overlap() int {
	return chunk.OverlapFor(s.pat.Len(), s.opts.MaxEdits)
}

// Scan reports the hits whose start lies in c's primary region, in
// ascending start order.
func (s *Searcher) Scan(c chunk.Chunk) []Hit {
	if s.pat.Len() > s.seq.Len() {
		return nil
	}
	switch s.algo {
	case Filtered:
		return s.scanFiltered(c)
	case Naive:
		return s.scanNaive(c)
	case Myers:
		return s.scanMyers(c)
	case Banded:
		return s.scanBanded(c)
	default:
		return s.scanKMP(c)
	}
}

// lastStart returns the exclusive bound of exact-match starts owned by c.
func (s *Searcher) lastStart(c chunk.Chunk) int {
	return min(c.End, s.seq.Len()-s.pat.Len()+1)
}

func (s *Searcher) exactHit(pos int) Hit {
	return Hit{Pos: pos, Len: s.pat.Len(), Strand: s.opts.Strand}
}

func (s *Searcher) scanKMP(c chunk.Chunk) []Hit {
	codes, fail := s.pat.codes, s.pat.fail
	m := len(codes)
	end := min(c.ScanEnd, c.End+m-1, s.seq.Len())

	var hits []Hit
	q := 0
	for i := c.Start; i < end; i++ {
		t := s.seq.Code(i)
		for q > 0 && codes[q] != t {
			q = fail[q-1]
		}
		if codes[q] == t {
			q++
		}
		if q == m {
			hits = append(hits, s.exactHit(i-m+1))
			q = fail[q-1]
		}
	}
	return hits
}

// scanFiltered is the two-tier exact search. Tier one XORs each packed
// word against the broadcast first code and checks the packed prefix at
// every zero lane; tier two verifies the remaining symbols.
func (s *Searcher) scanFiltered(c chunk.Chunk) []Hit {
	last := s.lastStart(c)
	if last <= c.Start {
		return nil
	}
	bits := s.seq.BitsPerSymbol()
	lanes := simd.LanesPerWord(bits)
	p := s.pat

	sc := pool.Get(last - c.Start)
	defer pool.Put(sc)

	first := simd.Broadcast(uint64(p.codes[0]), bits)
	for w := c.Start; w < last; w += lanes {
		z := simd.ZeroLanes(s.seq.Window(w)^first, bits)
		for z != 0 {
			var lane int
			lane, z = simd.NextLane(z, bits)
			pos := w + lane
			if pos >= last {
				break
			}
			if (s.seq.Window(pos)^p.prefix)&p.prefixMask == 0 {
				sc.Mark(pos - c.Start)
			}
		}
	}

	var hits []Hit
	sc.Each(func(i int) bool {
		pos := c.Start + i
		if s.verifyTail(pos) {
			hits = append(hits, s.exactHit(pos))
		}
		return true
	})
	return hits
}

func (s *Searcher) verifyTail(pos int) bool {
	codes := s.pat.codes
	for i := s.pat.prefixLen; i < len(codes); i++ {
		if s.seq.Code(pos+i) != codes[i] {
			return false
		}
	}
	return true
}

func (s *Searcher) scanNaive(c chunk.Chunk) []Hit {
	var hits []Hit
	codes := s.pat.codes
	for pos := c.Start; pos < s.lastStart(c); pos++ {
		ok := true
		for i, pc := range codes {
			if !s.pat.match(s.seq.Code(pos+i), pc) {
				ok = false
				break
			}
		}
		if ok {
			hits = append(hits, s.exactHit(pos))
		}
	}
	return hits
}
