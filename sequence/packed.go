package sequence

import (
	"fmt"
	"strings"

	"github.com/hupe1980/seqpack/alphabet"
)

// Metadata carries optional identification for a sequence.
type Metadata struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
}

// Packed is an immutable, bit-packed biological sequence.
//
// Packed values are never modified after construction: every transform
// allocates a new store, so a *Packed may be shared by any number of
// concurrent readers without locking.
type Packed struct {
	alpha  *alphabet.Alphabet
	bits   uint
	length int
	buf    []byte
	meta   Metadata
}

// FromSymbols validates raw against a and packs it.
// The first offending character is reported as *alphabet.InvalidSymbolError.
func FromSymbols(a *alphabet.Alphabet, raw []byte) (*Packed, error) {
	if a == nil {
		return nil, ErrNilAlphabet
	}
	if err := a.Validate(raw); err != nil {
		return nil, err
	}

	p := newPacker(len(raw), a.BitsPerSymbol())
	for _, c := range raw {
		// Validate guarantees Encode succeeds.
		code, _ := a.Encode(c)
		p.put(code)
	}
	return &Packed{alpha: a, bits: a.BitsPerSymbol(), length: len(raw), buf: p.buf}, nil
}

// FromString is FromSymbols for string input.
func FromString(a *alphabet.Alphabet, s string) (*Packed, error) {
	return FromSymbols(a, []byte(s))
}

// FromRaw rebuilds a store from its serialized fields: the symbol count and
// the packed buffer. Every code and the trailing padding are checked, so a
// buffer not produced by this package fails with alphabet.ErrCorruptCode.
// buf is copied.
func FromRaw(a *alphabet.Alphabet, length int, buf []byte) (*Packed, error) {
	if a == nil {
		return nil, ErrNilAlphabet
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrCorruptBuffer, length)
	}
	bits := a.BitsPerSymbol()
	if want := packedSize(length, bits); len(buf) != want {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, want %d for %d symbols", ErrCorruptBuffer, len(buf), want, length)
	}

	owned := make([]byte, len(buf))
	copy(owned, buf)

	if a.Size() < 1<<bits {
		for i := 0; i < length; i++ {
			if code := getCode(owned, i, bits); !a.Valid(code) {
				return nil, &alphabet.CorruptCodeError{Code: code, Position: i, Kind: a.Kind()}
			}
		}
	}
	if pad := uint64(len(owned))*8 - uint64(length)*uint64(bits); pad > 0 {
		if owned[len(owned)-1]&byte(1<<pad-1) != 0 {
			return nil, fmt.Errorf("%w: non-zero padding", ErrCorruptBuffer)
		}
	}
	return &Packed{alpha: a, bits: bits, length: length, buf: owned}, nil
}

// Alphabet returns the alphabet the sequence is encoded with.
func (p *Packed) Alphabet() *alphabet.Alphabet { return p.alpha }

// Kind returns the alphabet kind.
func (p *Packed) Kind() alphabet.Kind { return p.alpha.Kind() }

// Len returns the number of symbols, independent of buffer padding.
func (p *Packed) Len() int { return p.length }

// BitsPerSymbol returns the packed symbol width.
func (p *Packed) BitsPerSymbol() uint { return p.bits }

// Bytes returns the packed buffer. The slice must not be modified.
func (p *Packed) Bytes() []byte { return p.buf }

// SizeBytes returns the length of the packed buffer.
func (p *Packed) SizeBytes() int { return len(p.buf) }

// Metadata returns the sequence metadata.
func (p *Packed) Metadata() Metadata { return p.meta }

// WithMetadata returns a copy of p sharing the packed buffer but carrying meta.
func (p *Packed) WithMetadata(meta Metadata) *Packed {
	cp := *p
	cp.meta = meta
	return &cp
}

// WithID returns a copy of p with the given ID.
func (p *Packed) WithID(id string) *Packed {
	m := p.meta
	m.ID = id
	return p.WithMetadata(m)
}

// WithDescription returns a copy of p with the given description.
func (p *Packed) WithDescription(desc string) *Packed {
	m := p.meta
	m.Description = desc
	return p.WithMetadata(m)
}

// At returns the code of symbol i.
func (p *Packed) At(i int) (alphabet.Code, error) {
	if i < 0 || i >= p.length {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, p.length)
	}
	code := getCode(p.buf, i, p.bits)
	if !p.alpha.Valid(code) {
		return 0, &alphabet.CorruptCodeError{Code: code, Position: i, Kind: p.alpha.Kind()}
	}
	return code, nil
}

// Code returns the code of symbol i without bounds or range checks.
// i must satisfy 0 <= i < Len(); search kernels use it on the hot path.
func (p *Packed) Code(i int) alphabet.Code {
	return getCode(p.buf, i, p.bits)
}

// SymbolAt returns the decoded symbol at i.
func (p *Packed) SymbolAt(i int) (byte, error) {
	code, err := p.At(i)
	if err != nil {
		return 0, err
	}
	return p.alpha.Decode(code)
}

// Window returns 64 bits of the packed stream starting at symbol i. Bits
// past the end of the buffer read as zero. The first symbol occupies the
// most significant bits.
func (p *Packed) Window(i int) uint64 {
	return window64(p.buf, uint64(i)*uint64(p.bits))
}

// Slice returns an O(1) forward view of [start, end).
func (p *Packed) Slice(start, end int) (View, error) {
	if start < 0 || end < start || end > p.length {
		return View{}, fmt.Errorf("%w: slice [%d:%d] of length %d", ErrIndexOutOfRange, start, end, p.length)
	}
	return View{seq: p, start: start, end: end, strand: Forward}, nil
}

// View returns a forward view over the whole sequence.
func (p *Packed) View() View {
	return View{seq: p, start: 0, end: p.length, strand: Forward}
}

// Symbols decodes the whole sequence. Use only at boundaries (display,
// format conversion); search never materializes symbols.
func (p *Packed) Symbols() []byte {
	out := make([]byte, p.length)
	for i := range out {
		sym, err := p.alpha.Decode(getCode(p.buf, i, p.bits))
		if err != nil {
			sym = '?'
		}
		out[i] = sym
	}
	return out
}

// String implements fmt.Stringer.
func (p *Packed) String() string { return string(p.Symbols()) }

// Equal reports whether p and o hold the same symbols under the same alphabet.
func (p *Packed) Equal(o *Packed) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.alpha != o.alpha || p.length != o.length {
		return false
	}
	return string(p.buf) == string(o.buf)
}

// GoString renders a short debug form.
func (p *Packed) GoString() string {
	const preview = 32
	var b strings.Builder
	fmt.Fprintf(&b, "sequence.Packed{%s, len=%d, ", p.alpha, p.length)
	if p.length > preview {
		v, _ := p.Slice(0, preview)
		b.WriteString(v.String())
		b.WriteString("...")
	} else {
		b.WriteString(p.String())
	}
	b.WriteString("}")
	return b.String()
}
