// Package seqpack stores biological sequences (DNA, RNA, protein) in
// bit-packed form and searches them in parallel without decoding.
//
// # Quick Start
//
//	eng, _ := seqpack.New()
//	seq, _ := eng.Build(ctx, alphabet.KindDNA, []byte("ACGTACGTTTGCA"))
//	hits, _ := eng.FindExact(ctx, seq, []byte("ACGT"))
//	for _, h := range hits {
//	    fmt.Println(h.Position, h.Length)
//	}
//
// # Storage
//
// Strict DNA and RNA use 2 bits per symbol, the IUPAC alphabets 4 bits and
// protein 5 bits. Symbols are packed most significant bit first, so a
// 64-bit window of the buffer holds consecutive symbols in reading order.
// Stores are immutable; every transform returns a new store and any number
// of goroutines may search one store concurrently.
//
// # Search
//
// A search splits the sequence into cache-sized chunks that overlap by the
// longest possible match, scans them on a worker pool and merges the
// per-chunk hits into one ordered, duplicate-free result:
//
//	approx, _ := eng.FindApproximate(ctx, seq, []byte("ACGA"), 1)
//	both, _ := eng.FindBothStrands(ctx, seq, []byte("TTGC"), 0)
//
// Exact search on 2- and 4-bit alphabets runs a word-parallel filter over
// 64-bit windows before verifying candidates; other exact searches use KMP.
// Approximate search uses Myers' bit-vector algorithm for patterns up to 64
// symbols and a banded dynamic program for longer ones.
//
// # Ambiguity codes
//
// IUPAC codes are ordinary symbols by default: N in a pattern matches only
// N in the text. WithAmbiguityMatching makes them wildcards that match any
// code sharing a base; the gap never matches.
//
// # Configuration
//
// Engines are configured with functional options or a Config loaded from
// YAML:
//
//	cfg, _ := seqpack.LoadConfig("seqpack.yaml")
//	eng, _ := seqpack.New(seqpack.WithConfig(cfg), seqpack.WithLogLevel(slog.LevelDebug))
package seqpack
