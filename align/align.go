package align

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/sequence"
)

const neg = math.MinInt / 4

// Alignment is a pairwise alignment of a query against a target.
//
// Query and Target hold the aligned region with '-' in gap columns. The
// region covers query[QueryStart:QueryEnd] and target[TargetStart:TargetEnd];
// global alignments always cover both sequences. An empty alignment has
// score 0 and all offsets 0.
type Alignment struct {
	Mode        Mode    `json:"mode"`
	Score       int     `json:"score"`
	Query       string  `json:"query"`
	Target      string  `json:"target"`
	QueryStart  int     `json:"query_start"`
	QueryEnd    int     `json:"query_end"`
	TargetStart int     `json:"target_start"`
	TargetEnd   int     `json:"target_end"`
	Matches     int     `json:"matches"`
	Identity    float64 `json:"identity"`
}

// Len returns the number of alignment columns.
func (a Alignment) Len() int { return len(a.Query) }

// NeedlemanWunsch aligns a and b end to end.
func NeedlemanWunsch(a, b *sequence.Packed, sc Scoring) (Alignment, error) {
	return Align(a, b, Global, sc)
}

// SmithWaterman returns the best-scoring local alignment of a and b.
func SmithWaterman(a, b *sequence.Packed, sc Scoring) (Alignment, error) {
	return Align(a, b, Local, sc)
}

// SemiGlobalAlign aligns a and b without charging end overhangs.
func SemiGlobalAlign(a, b *sequence.Packed, sc Scoring) (Alignment, error) {
	return Align(a, b, SemiGlobal, sc)
}

// Align aligns query a against target b. Both must be non-empty and share
// an alphabet.
func Align(a, b *sequence.Packed, mode Mode, sc Scoring) (Alignment, error) {
	if err := checkPair(a, b); err != nil {
		return Alignment{}, err
	}
	if a.Len() == 0 || b.Len() == 0 {
		return Alignment{}, fmt.Errorf("%w: lengths %d and %d", ErrEmptySequence, a.Len(), b.Len())
	}
	if mode > SemiGlobal {
		return Alignment{}, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
	if err := sc.Validate(); err != nil {
		return Alignment{}, err
	}
	rows, cols := a.Len()+1, b.Len()+1
	if rows > MaxCells/cols {
		return Alignment{}, fmt.Errorf("%w: %d x %d cells", ErrTooLarge, rows, cols)
	}

	al := &aligner{
		mode:  mode,
		sc:    sc,
		alpha: a.Alphabet(),
		a:     a,
		b:     b,
		cols:  cols,
	}
	al.fill()
	return al.traceback(), nil
}

func checkPair(a, b *sequence.Packed) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: nil sequence", ErrEmptySequence)
	}
	if a.Kind() != b.Kind() {
		return fmt.Errorf("%w: %s and %s", sequence.ErrAlphabetMismatch, a.Kind(), b.Kind())
	}
	return nil
}

type state uint8

const (
	inM state = iota // a[i-1] paired with b[j-1]
	inX              // gap in a, consumes b[j-1]
	inY              // gap in b, consumes a[i-1]
)

// aligner holds the Gotoh matrices in row-major order, one row per query
// prefix.
type aligner struct {
	mode  Mode
	sc    Scoring
	alpha *alphabet.Alphabet
	a, b  *sequence.Packed
	cols  int

	m, x, y []int
}

func (al *aligner) matches(i, j int) bool {
	return al.alpha.Matches(al.b.Code(j-1), al.a.Code(i-1), al.sc.Ambiguity)
}

func (al *aligner) subst(i, j int) int {
	if al.matches(i, j) {
		return al.sc.Match
	}
	return al.sc.Mismatch
}

func (al *aligner) fill() {
	n, w := al.a.Len(), al.b.Len()
	size := (n + 1) * al.cols
	al.m, al.x, al.y = make([]int, size), make([]int, size), make([]int, size)
	for _, mat := range [][]int{al.m, al.x, al.y} {
		for k := range mat {
			mat[k] = neg
		}
	}

	open, ext := al.sc.GapOpen, al.sc.GapExtend
	if al.mode == Global {
		al.m[0] = 0
		for j := 1; j <= w; j++ {
			al.x[j] = open + (j-1)*ext
		}
		for i := 1; i <= n; i++ {
			al.y[i*al.cols] = open + (i-1)*ext
		}
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= w; j++ {
			c := i*al.cols + j

			d := c - al.cols - 1
			prev := max(al.m[d], al.x[d], al.y[d])
			if al.mode == Local || (al.mode == SemiGlobal && (i == 1 || j == 1)) {
				prev = max(prev, 0)
			}
			al.m[c] = prev + al.subst(i, j)

			l := c - 1
			al.x[c] = max(al.m[l]+open, al.x[l]+ext, al.y[l]+open)

			u := c - al.cols
			al.y[c] = max(al.m[u]+open, al.y[u]+ext, al.x[u]+open)
		}
	}
}

// best returns the cell and state the traceback starts from, and false
// when the empty alignment scores at least as well.
func (al *aligner) best() (i, j, score int, st state, ok bool) {
	n, w := al.a.Len(), al.b.Len()
	switch al.mode {
	case Global:
		c := n*al.cols + w
		score = max(al.m[c], al.x[c], al.y[c])
		switch score {
		case al.m[c]:
			st = inM
		case al.x[c]:
			st = inX
		default:
			st = inY
		}
		return n, w, score, st, true

	case Local:
		for r := 1; r <= n; r++ {
			for k := 1; k <= w; k++ {
				if v := al.m[r*al.cols+k]; v > score {
					i, j, score = r, k, v
				}
			}
		}
		return i, j, score, inM, score > 0

	default:
		i, j, score = n, w, al.m[n*al.cols+w]
		for k := 1; k <= w; k++ {
			if v := al.m[n*al.cols+k]; v > score {
				i, j, score = n, k, v
			}
		}
		for r := 1; r <= n; r++ {
			if v := al.m[r*al.cols+w]; v > score {
				i, j, score = r, w, v
			}
		}
		return i, j, score, inM, score >= 0
	}
}

func (al *aligner) traceback() Alignment {
	ei, ej, score, st, ok := al.best()
	if !ok {
		return Alignment{Mode: al.mode}
	}

	open, ext := al.sc.GapOpen, al.sc.GapExtend
	qs, ts := al.a.Symbols(), al.b.Symbols()
	var q, t []byte
	matches := 0
	i, j := ei, ej

walk:
	for {
		if al.mode == Global {
			if i == 0 {
				for ; j > 0; j-- {
					q, t = append(q, '-'), append(t, ts[j-1])
				}
				break
			}
			if j == 0 {
				for ; i > 0; i-- {
					q, t = append(q, qs[i-1]), append(t, '-')
				}
				break
			}
		} else if i == 0 || j == 0 {
			break
		}

		c := i*al.cols + j
		switch st {
		case inM:
			q, t = append(q, qs[i-1]), append(t, ts[j-1])
			if al.matches(i, j) {
				matches++
			}
			target := al.m[c] - al.subst(i, j)
			i, j = i-1, j-1
			d := c - al.cols - 1
			if al.mode == Local && max(al.m[d], al.x[d], al.y[d]) <= 0 {
				break walk
			}
			switch target {
			case al.m[d]:
				st = inM
			case al.x[d]:
				st = inX
			default:
				st = inY
			}

		case inX:
			q, t = append(q, '-'), append(t, ts[j-1])
			target := al.x[c]
			l := c - 1
			j--
			switch target {
			case al.m[l] + open:
				st = inM
			case al.x[l] + ext:
				st = inX
			default:
				st = inY
			}

		case inY:
			q, t = append(q, qs[i-1]), append(t, '-')
			target := al.y[c]
			u := c - al.cols
			i--
			switch target {
			case al.m[u] + open:
				st = inM
			case al.y[u] + ext:
				st = inY
			default:
				st = inX
			}
		}
	}
	slices.Reverse(q)
	slices.Reverse(t)

	aln := Alignment{
		Mode:        al.mode,
		Score:       score,
		Query:       string(q),
		Target:      string(t),
		QueryStart:  i,
		QueryEnd:    ei,
		TargetStart: j,
		TargetEnd:   ej,
		Matches:     matches,
	}
	if len(q) > 0 {
		aln.Identity = float64(matches) / float64(len(q)) * 100
	}
	return aln
}
