// Package simd provides CPU capability detection and word-parallel (SWAR)
// helpers for comparing bit-packed symbols.
//
// The helpers treat a uint64 as a vector of 2-, 4- or 8-bit lanes, so a
// single XOR and a few shifts test 32 nucleotides at once with no
// per-symbol branching. Runtime detection (golang.org/x/sys/cpu) records
// the host ISA; the comparison mode can be forced with the SEQPACK_SIMD
// environment variable ("scalar" or "swar").
package simd
