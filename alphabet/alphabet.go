package alphabet

import (
	"fmt"
	"strings"
)

// Kind identifies a sequence alphabet.
type Kind uint8

const (
	// KindDNA is the strict nucleotide alphabet ACGT (2 bits per symbol).
	KindDNA Kind = iota + 1
	// KindRNA is the strict nucleotide alphabet ACGU (2 bits per symbol).
	KindRNA
	// KindDNAIUPAC is DNA with IUPAC ambiguity codes and gap (4 bits per symbol).
	KindDNAIUPAC
	// KindRNAIUPAC is RNA with IUPAC ambiguity codes and gap (4 bits per symbol).
	KindRNAIUPAC
	// KindProtein is the amino-acid alphabet (5 bits per symbol).
	KindProtein
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDNA:
		return "dna"
	case KindRNA:
		return "rna"
	case KindDNAIUPAC:
		return "dna-iupac"
	case KindRNAIUPAC:
		return "rna-iupac"
	case KindProtein:
		return "protein"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name as returned by Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dna":
		return KindDNA, true
	case "rna":
		return KindRNA, true
	case "dna-iupac", "iupac":
		return KindDNAIUPAC, true
	case "rna-iupac":
		return KindRNAIUPAC, true
	case "protein", "aa":
		return KindProtein, true
	default:
		return 0, false
	}
}

// Code is the packed numeric value of one symbol.
type Code uint8

const invalid = -1

// Alphabet holds the encode/decode tables of one sequence kind.
//
// Alphabets are immutable package-level values and are safe for
// concurrent use without synchronization.
type Alphabet struct {
	kind       Kind
	bits       uint
	symbols    []byte
	codes      [256]int16
	complement []Code // nil when the alphabet has no complement
	bitmask    bool   // codes are base-set bitmasks (IUPAC)
}

func newAlphabet(kind Kind, bits uint, symbols string, complement []Code, bitmask bool) *Alphabet {
	a := &Alphabet{
		kind:       kind,
		bits:       bits,
		symbols:    []byte(symbols),
		complement: complement,
		bitmask:    bitmask,
	}
	for i := range a.codes {
		a.codes[i] = invalid
	}
	for code, sym := range a.symbols {
		a.codes[sym] = int16(code)
		if sym >= 'A' && sym <= 'Z' {
			a.codes[sym+('a'-'A')] = int16(code)
		}
	}
	return a
}

// Kind returns the alphabet kind.
func (a *Alphabet) Kind() Kind { return a.kind }

// String returns the alphabet name.
func (a *Alphabet) String() string { return a.kind.String() }

// BitsPerSymbol returns the packed width of one symbol.
func (a *Alphabet) BitsPerSymbol() uint { return a.bits }

// Size returns the number of valid codes. Valid codes are [0, Size).
func (a *Alphabet) Size() int { return len(a.symbols) }

// Symbols returns the canonical symbols ordered by code.
func (a *Alphabet) Symbols() []byte {
	out := make([]byte, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// IsNucleotide reports whether the alphabet has a complement map.
func (a *Alphabet) IsNucleotide() bool { return a.complement != nil }

// HasAmbiguity reports whether codes are IUPAC base-set bitmasks.
func (a *Alphabet) HasAmbiguity() bool { return a.bitmask }

// Contains reports whether c is a valid symbol (case-insensitive).
func (a *Alphabet) Contains(c byte) bool { return a.codes[c] != invalid }

// Encode maps a symbol to its code. Lower-case letters fold to upper case.
func (a *Alphabet) Encode(c byte) (Code, error) {
	code := a.codes[c]
	if code == invalid {
		return 0, &InvalidSymbolError{Position: -1, Symbol: c, Kind: a.kind}
	}
	return Code(code), nil
}

// Decode maps a code back to its canonical (upper-case) symbol.
func (a *Alphabet) Decode(code Code) (byte, error) {
	if int(code) >= len(a.symbols) {
		return 0, &CorruptCodeError{Code: code, Position: -1, Kind: a.kind}
	}
	return a.symbols[code], nil
}

// Valid reports whether code lies in the valid range.
func (a *Alphabet) Valid(code Code) bool { return int(code) < len(a.symbols) }

// Validate scans raw once and reports the first symbol outside the alphabet.
func (a *Alphabet) Validate(raw []byte) error {
	for i, c := range raw {
		if a.codes[c] == invalid {
			return &InvalidSymbolError{Position: i, Symbol: c, Kind: a.kind}
		}
	}
	return nil
}

// Complement returns the complementary code for nucleotide alphabets.
func (a *Alphabet) Complement(code Code) (Code, error) {
	if a.complement == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoComplement, a.kind)
	}
	if int(code) >= len(a.complement) {
		return 0, &CorruptCodeError{Code: code, Position: -1, Kind: a.kind}
	}
	return a.complement[code], nil
}

// ComplementTable returns the code complement table, or nil for protein.
// The returned slice must not be modified.
func (a *Alphabet) ComplementTable() []Code { return a.complement }

// Matches reports whether a text code satisfies a pattern code.
//
// With ambiguity disabled, or for alphabets without IUPAC codes, this is
// code equality. With ambiguity enabled on an IUPAC alphabet, two codes
// match when their base sets intersect; the gap never matches.
func (a *Alphabet) Matches(text, pattern Code, ambiguity bool) bool {
	if ambiguity && a.bitmask {
		return text&pattern != 0
	}
	return text == pattern
}

// ByKind returns the registered alphabet for kind.
func ByKind(k Kind) (*Alphabet, bool) {
	switch k {
	case KindDNA:
		return DNA, true
	case KindRNA:
		return RNA, true
	case KindDNAIUPAC:
		return DNAIUPAC, true
	case KindRNAIUPAC:
		return RNAIUPAC, true
	case KindProtein:
		return Protein, true
	default:
		return nil, false
	}
}

// Detect returns the narrowest registered alphabet that accepts raw.
// Candidates are tried in the order DNA, RNA, DNA-IUPAC, RNA-IUPAC, protein.
func Detect(raw []byte) (*Alphabet, bool) {
	for _, a := range []*Alphabet{DNA, RNA, DNAIUPAC, RNAIUPAC, Protein} {
		if a.Validate(raw) == nil {
			return a, true
		}
	}
	return nil, false
}
