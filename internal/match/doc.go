// Package match implements the per-chunk search kernels over packed
// sequences.
//
// Exact search uses a two-tier word-parallel filter for 2- and 4-bit
// alphabets and KMP over codes otherwise. Approximate search uses Myers'
// bit-vector algorithm for patterns up to 64 symbols and a banded dynamic
// program beyond that. Every kernel reads codes straight from the packed
// buffer and reports only matches whose start lies in the chunk's primary
// region; Merge combines per-chunk results.
package match
