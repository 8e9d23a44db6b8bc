// Package alphabet defines the symbol sets of biological sequences and the
// tables that map symbols to packed codes.
//
// # Alphabets
//
//	Kind        Bits  Symbols
//	dna         2     ACGT
//	rna         2     ACGU
//	dna-iupac   4     - A C M G R S V T W Y H K D B N
//	rna-iupac   4     - A C M G R S V U W Y H K D B N
//	protein     5     ACDEFGHIKLMNPQRSTVWY BZJUOX * -
//
// Lower-case input folds to upper case; decoding always yields the
// canonical upper-case symbol.
//
// # Ambiguity codes
//
// IUPAC codes are stored as base-set bitmasks (A=1, C=2, G=4, T/U=8), so
// complementing is a 4-bit reversal and wildcard comparison is a single
// AND. Whether ambiguity codes act as wildcards is decided by the caller
// through Matches; by default they are ordinary symbols.
package alphabet
