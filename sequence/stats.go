package sequence

import (
	"fmt"

	"github.com/hupe1980/seqpack/alphabet"
)

// CodeCounts returns the number of occurrences of every code, indexed by code.
func (p *Packed) CodeCounts() []int {
	counts := make([]int, 1<<p.bits)
	for i := 0; i < p.length; i++ {
		counts[getCode(p.buf, i, p.bits)]++
	}
	return counts[:p.alpha.Size()]
}

// Composition returns symbol counts keyed by canonical symbol.
// Symbols that do not occur are omitted.
func (p *Packed) Composition() map[byte]int {
	out := make(map[byte]int)
	for code, n := range p.CodeCounts() {
		if n == 0 {
			continue
		}
		sym, _ := p.alpha.Decode(alphabet.Code(code))
		out[sym] = n
	}
	return out
}

// GCContent returns the percentage of G, C and S symbols.
// An empty sequence has 0% GC.
func (p *Packed) GCContent() (float64, error) {
	if !p.alpha.IsNucleotide() {
		return 0, fmt.Errorf("%w: GC content of %s", ErrUnsupported, p.alpha)
	}
	if p.length == 0 {
		return 0, nil
	}
	comp := p.Composition()
	gc := comp['G'] + comp['C'] + comp['S']
	return float64(gc) / float64(p.length) * 100, nil
}
