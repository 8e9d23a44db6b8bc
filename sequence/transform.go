package sequence

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/seqpack/alphabet"
)

// Concat returns a new store holding p followed by o.
//
// When p ends on a byte boundary the buffers are joined directly;
// otherwise o's symbols are repacked after p's.
func (p *Packed) Concat(o *Packed) (*Packed, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil operand", ErrAlphabetMismatch)
	}
	if p.alpha != o.alpha {
		return nil, fmt.Errorf("%w: %s and %s", ErrAlphabetMismatch, p.alpha, o.alpha)
	}

	n := p.length + o.length
	if (uint64(p.length)*uint64(p.bits))%8 == 0 {
		buf := make([]byte, 0, packedSize(n, p.bits))
		buf = append(buf, p.buf...)
		buf = append(buf, o.buf...)
		return &Packed{alpha: p.alpha, bits: p.bits, length: n, buf: buf}, nil
	}

	buf := make([]byte, packedSize(n, p.bits))
	copy(buf, p.buf)
	for i := 0; i < o.length; i++ {
		putCode(buf, p.length+i, p.bits, getCode(o.buf, i, o.bits))
	}
	return &Packed{alpha: p.alpha, bits: p.bits, length: n, buf: buf}, nil
}

// ReverseComplement returns the reverse complement as a new store.
// It works symbol by symbol, so it is correct for any byte alignment.
func (p *Packed) ReverseComplement() (*Packed, error) {
	comp := p.alpha.ComplementTable()
	if comp == nil {
		return nil, fmt.Errorf("%w: reverse complement of %s: %w", ErrUnsupported, p.alpha, alphabet.ErrNoComplement)
	}
	out := newPacker(p.length, p.bits)
	for i := p.length - 1; i >= 0; i-- {
		code, err := p.At(i)
		if err != nil {
			return nil, err
		}
		out.put(comp[code])
	}
	return p.derive(out.buf, p.alpha), nil
}

// Complement returns the complement (not reversed) as a new store.
func (p *Packed) Complement() (*Packed, error) {
	comp := p.alpha.ComplementTable()
	if comp == nil {
		return nil, fmt.Errorf("%w: complement of %s: %w", ErrUnsupported, p.alpha, alphabet.ErrNoComplement)
	}
	out := newPacker(p.length, p.bits)
	for i := 0; i < p.length; i++ {
		code, err := p.At(i)
		if err != nil {
			return nil, err
		}
		out.put(comp[code])
	}
	return p.derive(out.buf, p.alpha), nil
}

// Reverse returns the symbols in reverse order as a new store.
func (p *Packed) Reverse() *Packed {
	out := newPacker(p.length, p.bits)
	for i := p.length - 1; i >= 0; i-- {
		out.put(getCode(p.buf, i, p.bits))
	}
	return p.derive(out.buf, p.alpha)
}

// Transcribe converts DNA to RNA (T -> U). DNA and RNA alphabets share
// their code layout, so the packed buffer is copied unchanged.
func (p *Packed) Transcribe() (*Packed, error) {
	var to *alphabet.Alphabet
	switch p.alpha.Kind() {
	case alphabet.KindDNA:
		to = alphabet.RNA
	case alphabet.KindDNAIUPAC:
		to = alphabet.RNAIUPAC
	default:
		return nil, fmt.Errorf("%w: transcribe %s", ErrUnsupported, p.alpha)
	}
	return p.derive(cloneBytes(p.buf), to), nil
}

// BackTranscribe converts RNA to DNA (U -> T).
func (p *Packed) BackTranscribe() (*Packed, error) {
	var to *alphabet.Alphabet
	switch p.alpha.Kind() {
	case alphabet.KindRNA:
		to = alphabet.DNA
	case alphabet.KindRNAIUPAC:
		to = alphabet.DNAIUPAC
	default:
		return nil, fmt.Errorf("%w: back-transcribe %s", ErrUnsupported, p.alpha)
	}
	return p.derive(cloneBytes(p.buf), to), nil
}

// Mask returns a copy of p with every position in positions replaced by
// symbol. p itself is left untouched.
func (p *Packed) Mask(positions *roaring64.Bitmap, symbol byte) (*Packed, error) {
	code, err := p.alpha.Encode(symbol)
	if err != nil {
		return nil, err
	}
	buf := cloneBytes(p.buf)
	if positions == nil {
		return p.derive(buf, p.alpha), nil
	}
	if !positions.IsEmpty() && positions.Maximum() >= uint64(p.length) {
		return nil, fmt.Errorf("%w: mask position %d, length %d", ErrIndexOutOfRange, positions.Maximum(), p.length)
	}
	it := positions.Iterator()
	for it.HasNext() {
		setCode(buf, int(it.Next()), p.bits, code)
	}
	return p.derive(buf, p.alpha), nil
}

// derive builds a sibling store of the same length carrying p's metadata.
func (p *Packed) derive(buf []byte, a *alphabet.Alphabet) *Packed {
	return &Packed{alpha: a, bits: a.BitsPerSymbol(), length: p.length, buf: buf, meta: p.meta}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
