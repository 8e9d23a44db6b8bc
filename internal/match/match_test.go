package match

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/internal/chunk"
	"github.com/hupe1980/seqpack/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pack(t *testing.T, a *alphabet.Alphabet, s string) *sequence.Packed {
	t.Helper()
	p, err := sequence.FromString(a, s)
	require.NoError(t, err)
	return p
}

func compile(t *testing.T, a *alphabet.Alphabet, s string, ambiguity bool) *Pattern {
	t.Helper()
	p, err := Compile(a, []byte(s), ambiguity)
	require.NoError(t, err)
	return p
}

func run(t *testing.T, seq *sequence.Packed, pat *Pattern, opts Options, chunkSize int) []Hit {
	t.Helper()
	s := NewSearcher(seq, pat, opts)
	cs, err := chunk.Partition(seq.Len(), chunkSize, s.Overlap())
	require.NoError(t, err)
	parts := make([][]Hit, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, s.Scan(c))
	}
	return Merge(parts...)
}

func positions(hits []Hit) []int {
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.Pos)
	}
	return out
}

func randomString(rng *rand.Rand, symbols string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(symbols[rng.Intn(len(symbols))])
	}
	return b.String()
}

func naiveExact(text, pat string) []int {
	out := []int{}
	for i := 0; i+len(pat) <= len(text); i++ {
		if text[i:i+len(pat)] == pat {
			out = append(out, i)
		}
	}
	return out
}

func TestExactScenarios(t *testing.T) {
	tests := []struct {
		seq, pat string
		want     []int
	}{
		{"ACGTACGTTTGCA", "ACGT", []int{0, 4}},
		{"AAAAA", "AA", []int{0, 1, 2, 3}},
		{"ACGT", "ACGTA", []int{}},
		{"ACGT", "T", []int{3}},
	}
	for _, algo := range []bool{false, true} {
		for _, tt := range tests {
			hits := run(t, pack(t, alphabet.DNA, tt.seq), compile(t, alphabet.DNA, tt.pat, false), Options{WordParallel: algo}, 3)
			assert.Equal(t, tt.want, positions(hits), "%s/%s word-parallel=%v", tt.seq, tt.pat, algo)
			for _, h := range hits {
				assert.Equal(t, len(tt.pat), h.Len)
				assert.Zero(t, h.Dist)
			}
		}
	}
}

func TestSelectAlgorithm(t *testing.T) {
	dna := pack(t, alphabet.DNA, "ACGT")
	iupac := pack(t, alphabet.DNAIUPAC, "ACGT")
	prot := pack(t, alphabet.Protein, "MKV")

	tests := []struct {
		seq  *sequence.Packed
		pat  *Pattern
		opts Options
		want Algorithm
	}{
		{dna, compile(t, alphabet.DNA, "AC", false), Options{WordParallel: true}, Filtered},
		{dna, compile(t, alphabet.DNA, "AC", false), Options{}, KMP},
		{iupac, compile(t, alphabet.DNAIUPAC, "AN", false), Options{WordParallel: true}, Filtered},
		{iupac, compile(t, alphabet.DNAIUPAC, "AN", true), Options{WordParallel: true}, Naive},
		{prot, compile(t, alphabet.Protein, "MK", false), Options{WordParallel: true}, KMP},
		{dna, compile(t, alphabet.DNA, "AC", false), Options{MaxEdits: 1}, Myers},
		{dna, compile(t, alphabet.DNA, strings.Repeat("A", 65), false), Options{MaxEdits: 1}, Banded},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewSearcher(tt.seq, tt.pat, tt.opts).Algorithm())
	}
}

func TestExactMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cases := []struct {
		a       *alphabet.Alphabet
		symbols string
	}{
		{alphabet.DNA, "ACGT"},
		{alphabet.DNAIUPAC, "ACGTN"},
		{alphabet.Protein, "ACDEFGHIKLMNPQRSTVWY"},
	}
	for _, tc := range cases {
		for trial := 0; trial < 30; trial++ {
			text := randomString(rng, tc.symbols[:min(len(tc.symbols), 2+trial%3)], 50+rng.Intn(300))
			plen := 1 + rng.Intn(40)
			start := rng.Intn(len(text) - min(plen, len(text)) + 1)
			pat := text[start : start+min(plen, len(text)-start)]
			want := naiveExact(text, pat)

			seq := pack(t, tc.a, text)
			p := compile(t, tc.a, pat, false)
			for _, wp := range []bool{false, true} {
				for _, cs := range []int{1, 7, 32, 1000} {
					got := positions(run(t, seq, p, Options{WordParallel: wp}, cs))
					require.Equal(t, want, got, "%s pat=%s wp=%v chunk=%d", tc.a, pat, wp, cs)
				}
			}
		}
	}
}

func TestChunkBoundaryReportedOnce(t *testing.T) {
	pat := "GATTACAGATTACA"
	for boundary := 5; boundary < 60; boundary += 7 {
		filler := []byte(strings.Repeat("C", 80))
		copy(filler[boundary-5:], pat)
		text := string(filler)
		seq := pack(t, alphabet.DNA, text)
		p := compile(t, alphabet.DNA, pat, false)

		for _, wp := range []bool{false, true} {
			hits := run(t, seq, p, Options{WordParallel: wp}, boundary)
			assert.Equal(t, []int{boundary - 5}, positions(hits))
		}
	}
}

func TestWildcardExact(t *testing.T) {
	seq := pack(t, alphabet.DNAIUPAC, "ACGTNAGGA-T")
	p := compile(t, alphabet.DNAIUPAC, "RG", true)
	hits := run(t, seq, p, Options{WordParallel: true}, 4)
	// R = A|G. N at 4 satisfies R but is followed by A.
	assert.Equal(t, []int{5, 6}, positions(hits))

	// N in the text satisfies R in the pattern.
	tr := compile(t, alphabet.DNAIUPAC, "TR", true)
	assert.Equal(t, []int{3}, positions(run(t, seq, tr, Options{}, 4)))

	// Literal mode: R only matches R.
	literal := compile(t, alphabet.DNAIUPAC, "RG", false)
	assert.Empty(t, run(t, seq, literal, Options{WordParallel: true}, 4))

	// Gap never matches a wildcard.
	gap := compile(t, alphabet.DNAIUPAC, "NN", true)
	for _, pos := range positions(run(t, seq, gap, Options{}, 4)) {
		assert.NotContains(t, []int{8, 9}, pos)
	}
}

func TestPatternReverseComplement(t *testing.T) {
	p := compile(t, alphabet.DNA, "AACG", false)
	rc, err := p.ReverseComplement()
	require.NoError(t, err)
	seq := pack(t, alphabet.DNA, "CGTT")
	assert.Equal(t, []int{0}, positions(run(t, seq, rc, Options{WordParallel: true}, 10)))

	_, err = compile(t, alphabet.Protein, "MK", false).ReverseComplement()
	assert.ErrorIs(t, err, alphabet.ErrNoComplement)
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(alphabet.DNA, nil, false)
	assert.ErrorIs(t, err, ErrEmptyPattern)

	_, err = Compile(alphabet.DNA, []byte("ACXT"), false)
	var ise *alphabet.InvalidSymbolError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 2, ise.Position)
}

func TestMerge(t *testing.T) {
	a := []Hit{{Pos: 1, Len: 3}, {Pos: 4, Len: 3}}
	b := []Hit{{Pos: 4, Len: 3}, {Pos: 2, Len: 3, Dist: 1}, {Pos: 4, Len: 3, Strand: sequence.Reverse}}
	c := []Hit{{Pos: 1, Len: 2, Dist: 1}}

	got := Merge(a, b, c)
	assert.Equal(t, []Hit{
		{Pos: 1, Len: 3},
		{Pos: 1, Len: 2, Dist: 1},
		{Pos: 2, Len: 3, Dist: 1},
		{Pos: 4, Len: 3},
		{Pos: 4, Len: 3, Strand: sequence.Reverse},
	}, got)

	assert.Nil(t, Merge())
	assert.Nil(t, Merge(nil, []Hit{}))
}
