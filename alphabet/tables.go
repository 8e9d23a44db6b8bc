package alphabet

// Strict nucleotide codes. The complement of code c is 3-c.
const (
	strictDNA = "ACGT"
	strictRNA = "ACGU"
)

// IUPAC codes are 4-bit base-set bitmasks: A=1, C=2, G=4, T/U=8.
// The symbol at index m stands for the bases set in m; index 0 is the gap.
const (
	iupacDNA = "-ACMGRSVTWYHKDBN"
	iupacRNA = "-ACMGRSVUWYHKDBN"
)

// Protein codes: the 20 standard amino acids, then ambiguity/rare
// residues B Z J U O X, stop and gap. Codes 28..31 are never produced.
const proteinSymbols = "ACDEFGHIKLMNPQRSTVWYBZJUOX*-"

var strictComplement = []Code{3, 2, 1, 0}

// iupacComplement reverses the four base bits (A<->T, C<->G).
var iupacComplement = func() []Code {
	t := make([]Code, 16)
	for m := 0; m < 16; m++ {
		var r Code
		for b := 0; b < 4; b++ {
			if m&(1<<b) != 0 {
				r |= 1 << (3 - b)
			}
		}
		t[m] = r
	}
	return t
}()

// Registered alphabets.
var (
	DNA      = newAlphabet(KindDNA, 2, strictDNA, strictComplement, false)
	RNA      = newAlphabet(KindRNA, 2, strictRNA, strictComplement, false)
	DNAIUPAC = newAlphabet(KindDNAIUPAC, 4, iupacDNA, iupacComplement, true)
	RNAIUPAC = newAlphabet(KindRNAIUPAC, 4, iupacRNA, iupacComplement, true)
	Protein  = newAlphabet(KindProtein, 5, proteinSymbols, nil, false)
)
