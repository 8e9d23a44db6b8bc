package match

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/internal/simd"
)

// ErrEmptyPattern is returned when compiling a zero-length pattern.
var ErrEmptyPattern = errors.New("empty pattern")

// MaxBitParallel is the longest pattern the Myers scan handles in one word.
const MaxBitParallel = 64

// Pattern is a search pattern encoded against one alphabet, with the
// per-algorithm tables precomputed.
type Pattern struct {
	alpha    *alphabet.Alphabet
	codes    []alphabet.Code
	wildcard bool

	// KMP failure function.
	fail []int

	// Packed prefix for the word-parallel filter.
	prefix     uint64
	prefixMask uint64
	prefixLen  int

	// Myers match vectors, one per code.
	peq [32]uint64
}

// Compile encodes raw with a. When ambiguity is set and a carries IUPAC
// codes, pattern and text codes match when their base sets intersect.
func Compile(a *alphabet.Alphabet, raw []byte, ambiguity bool) (*Pattern, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPattern
	}
	if err := a.Validate(raw); err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	codes := make([]alphabet.Code, len(raw))
	for i, c := range raw {
		codes[i], _ = a.Encode(c)
	}
	return CompileCodes(a, codes, ambiguity)
}

// CompileCodes builds a Pattern from already-encoded codes.
func CompileCodes(a *alphabet.Alphabet, codes []alphabet.Code, ambiguity bool) (*Pattern, error) {
	if len(codes) == 0 {
		return nil, ErrEmptyPattern
	}
	p := &Pattern{
		alpha:    a,
		codes:    codes,
		wildcard: ambiguity && a.HasAmbiguity(),
	}
	p.fail = failure(codes)
	p.buildPrefix()
	p.buildPeq()
	return p, nil
}

// Len returns the number of pattern symbols.
func (p *Pattern) Len() int { return len(p.codes) }

// Codes returns the encoded pattern. The slice must not be modified.
func (p *Pattern) Codes() []alphabet.Code { return p.codes }

// Wildcard reports whether IUPAC codes match by base-set intersection.
func (p *Pattern) Wildcard() bool { return p.wildcard }

// ReverseComplement returns the pattern for the opposite strand.
func (p *Pattern) ReverseComplement() (*Pattern, error) {
	comp := p.alpha.ComplementTable()
	if comp == nil {
		return nil, fmt.Errorf("pattern of %s: %w", p.alpha, alphabet.ErrNoComplement)
	}
	rc := make([]alphabet.Code, len(p.codes))
	for i, c := range p.codes {
		rc[len(rc)-1-i] = comp[c]
	}
	return CompileCodes(p.alpha, rc, p.wildcard)
}

func (p *Pattern) match(text, pat alphabet.Code) bool {
	return p.alpha.Matches(text, pat, p.wildcard)
}

func failure(codes []alphabet.Code) []int {
	fail := make([]int, len(codes))
	k := 0
	for i := 1; i < len(codes); i++ {
		for k > 0 && codes[i] != codes[k] {
			k = fail[k-1]
		}
		if codes[i] == codes[k] {
			k++
		}
		fail[i] = k
	}
	return fail
}

func (p *Pattern) buildPrefix() {
	bits := p.alpha.BitsPerSymbol()
	p.prefixLen = min(len(p.codes), simd.LanesPerWord(bits))
	for i := 0; i < p.prefixLen; i++ {
		p.prefix |= uint64(p.codes[i]) << (64 - uint(i+1)*bits)
	}
	p.prefixMask = simd.PrefixMask(p.prefixLen, bits)
}

func (p *Pattern) buildPeq() {
	if len(p.codes) > MaxBitParallel {
		return
	}
	for c := range p.peq {
		if c >= 1<<p.alpha.BitsPerSymbol() {
			break
		}
		for i, pc := range p.codes {
			if p.match(alphabet.Code(c), pc) {
				p.peq[c] |= 1 << uint(i)
			}
		}
	}
}
