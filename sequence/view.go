package sequence

import (
	"fmt"

	"github.com/hupe1980/seqpack/alphabet"
)

// Strand is the orientation of a view or match.
type Strand uint8

const (
	// Forward reads the stored symbols left to right.
	Forward Strand = iota
	// Reverse reads complemented symbols right to left.
	Reverse
)

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// MarshalText encodes the strand as "+" or "-".
func (s Strand) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "+" or "-".
func (s *Strand) UnmarshalText(b []byte) error {
	switch string(b) {
	case "+":
		*s = Forward
	case "-":
		*s = Reverse
	default:
		return fmt.Errorf("invalid strand %q", b)
	}
	return nil
}

// View is a non-owning window [Start, End) into a Packed sequence.
//
// A View borrows its sequence and never copies symbols. Reverse views
// report the reverse complement of the window and are only available for
// nucleotide alphabets.
type View struct {
	seq    *Packed
	start  int
	end    int
	strand Strand
}

// Sequence returns the underlying store.
func (v View) Sequence() *Packed { return v.seq }

// Start returns the first symbol offset in the underlying sequence.
func (v View) Start() int { return v.start }

// End returns the offset one past the last symbol.
func (v View) End() int { return v.end }

// Strand returns the view orientation.
func (v View) Strand() Strand { return v.strand }

// Len returns the number of symbols in the view.
func (v View) Len() int { return v.end - v.start }

// At returns the code at view offset i.
func (v View) At(i int) (alphabet.Code, error) {
	if i < 0 || i >= v.Len() {
		return 0, fmt.Errorf("%w: index %d, view length %d", ErrIndexOutOfRange, i, v.Len())
	}
	if v.strand == Forward {
		return v.seq.At(v.start + i)
	}
	code, err := v.seq.At(v.end - 1 - i)
	if err != nil {
		return 0, err
	}
	return v.seq.alpha.Complement(code)
}

// Slice returns a sub-view; offsets are relative to this view.
func (v View) Slice(start, end int) (View, error) {
	if start < 0 || end < start || end > v.Len() {
		return View{}, fmt.Errorf("%w: slice [%d:%d] of view length %d", ErrIndexOutOfRange, start, end, v.Len())
	}
	if v.strand == Forward {
		return View{seq: v.seq, start: v.start + start, end: v.start + end, strand: Forward}, nil
	}
	return View{seq: v.seq, start: v.end - end, end: v.end - start, strand: Reverse}, nil
}

// Slide moves the window by offset symbols along the underlying sequence,
// keeping its length and strand. A start before 0 saturates to 0.
func (v View) Slide(offset int) (View, error) {
	start := v.start
	switch {
	case offset < 0 && offset <= -start:
		start = 0
	case offset > 0 && offset > v.seq.Len()-v.end:
		return View{}, fmt.Errorf("%w: slide by %d past end %d of length %d", ErrIndexOutOfRange, offset, v.end, v.seq.Len())
	default:
		start += offset
	}
	return View{seq: v.seq, start: start, end: start + v.Len(), strand: v.strand}, nil
}

// Resize keeps the start and sets the window length to n.
func (v View) Resize(n int) (View, error) {
	if n < 0 || n > v.seq.Len()-v.start {
		return View{}, fmt.Errorf("%w: resize to %d from %d of length %d", ErrIndexOutOfRange, n, v.start, v.seq.Len())
	}
	return View{seq: v.seq, start: v.start, end: v.start + n, strand: v.strand}, nil
}

// ReverseComplement flips the view orientation in O(1).
func (v View) ReverseComplement() (View, error) {
	if !v.seq.alpha.IsNucleotide() {
		return View{}, fmt.Errorf("%w: reverse complement of %s: %w", ErrUnsupported, v.seq.alpha, alphabet.ErrNoComplement)
	}
	s := Forward
	if v.strand == Forward {
		s = Reverse
	}
	return View{seq: v.seq, start: v.start, end: v.end, strand: s}, nil
}

// Pack materializes the view into a new store.
func (v View) Pack() (*Packed, error) {
	a := v.seq.alpha
	p := newPacker(v.Len(), v.seq.bits)
	for i := 0; i < v.Len(); i++ {
		code, err := v.At(i)
		if err != nil {
			return nil, err
		}
		p.put(code)
	}
	return &Packed{alpha: a, bits: v.seq.bits, length: v.Len(), buf: p.buf}, nil
}

// Symbols decodes the view.
func (v View) Symbols() ([]byte, error) {
	out := make([]byte, v.Len())
	for i := range out {
		code, err := v.At(i)
		if err != nil {
			return nil, err
		}
		if out[i], err = v.seq.alpha.Decode(code); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// String implements fmt.Stringer. Corrupt codes render as '?'.
func (v View) String() string {
	b, err := v.Symbols()
	if err != nil {
		return "?"
	}
	return string(b)
}
