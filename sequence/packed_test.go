package sequence

import (
	"math/rand"
	"testing"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allAlphabets = []*alphabet.Alphabet{
	alphabet.DNA, alphabet.RNA, alphabet.DNAIUPAC, alphabet.RNAIUPAC, alphabet.Protein,
}

func randomSymbols(rng *rand.Rand, a *alphabet.Alphabet, n int) []byte {
	syms := a.Symbols()
	out := make([]byte, n)
	for i := range out {
		out[i] = syms[rng.Intn(len(syms))]
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, a := range allAlphabets {
		t.Run(a.String(), func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 63, 64, 65, 257} {
				raw := randomSymbols(rng, a, n)
				p, err := FromSymbols(a, raw)
				require.NoError(t, err)
				assert.Equal(t, string(raw), p.String())
				assert.Equal(t, n, p.Len())
				assert.Equal(t, (n*int(a.BitsPerSymbol())+7)/8, p.SizeBytes())
			}
		})
	}
}

func TestFromSymbolsInvalid(t *testing.T) {
	_, err := FromString(alphabet.DNA, "ACGX")
	require.Error(t, err)

	var ise *alphabet.InvalidSymbolError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 3, ise.Position)
	assert.ErrorIs(t, err, alphabet.ErrInvalidSymbol)

	_, err = FromSymbols(nil, []byte("A"))
	assert.ErrorIs(t, err, ErrNilAlphabet)
}

func TestAtStraddlingProteinCodes(t *testing.T) {
	raw := []byte("ACDEFGHIKLMNPQRSTVWYBZJUOX*-")
	p, err := FromSymbols(alphabet.Protein, raw)
	require.NoError(t, err)

	for i, c := range raw {
		code, err := p.At(i)
		require.NoError(t, err)
		want, err := alphabet.Protein.Encode(c)
		require.NoError(t, err)
		assert.Equal(t, want, code, "position %d", i)
	}

	_, err = p.At(len(raw))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = p.At(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestAtCorruptCode(t *testing.T) {
	// 0xF8 = 11111 000: code 31 in the first 5-bit slot.
	p := &Packed{alpha: alphabet.Protein, bits: 5, length: 1, buf: []byte{0xF8}}
	_, err := p.At(0)
	assert.ErrorIs(t, err, alphabet.ErrCorruptCode)
}

func TestFromRaw(t *testing.T) {
	p, err := FromString(alphabet.Protein, "MKWVTFISLLFLFSSAYS")
	require.NoError(t, err)

	q, err := FromRaw(alphabet.Protein, p.Len(), p.Bytes())
	require.NoError(t, err)
	assert.True(t, p.Equal(q))

	_, err = FromRaw(alphabet.Protein, p.Len()+8, p.Bytes())
	assert.ErrorIs(t, err, alphabet.ErrCorruptCode)

	_, err = FromRaw(alphabet.Protein, 1, []byte{0xF8})
	assert.ErrorIs(t, err, alphabet.ErrCorruptCode)

	// Non-zero padding after a single 2-bit symbol.
	_, err = FromRaw(alphabet.DNA, 1, []byte{0x01})
	assert.ErrorIs(t, err, alphabet.ErrCorruptCode)
}

func TestSliceConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, a := range allAlphabets {
		raw := randomSymbols(rng, a, 101)
		p, err := FromSymbols(a, raw)
		require.NoError(t, err)

		for trial := 0; trial < 50; trial++ {
			start := rng.Intn(p.Len() + 1)
			end := start + rng.Intn(p.Len()-start+1)
			v, err := p.Slice(start, end)
			require.NoError(t, err)
			require.Equal(t, end-start, v.Len())
			for i := 0; i < v.Len(); i++ {
				got, err := v.At(i)
				require.NoError(t, err)
				want, err := p.At(start + i)
				require.NoError(t, err)
				require.Equal(t, want, got)
			}
			assert.Equal(t, string(raw[start:end]), v.String())
		}
	}

	p, err := FromString(alphabet.DNA, "ACGT")
	require.NoError(t, err)
	_, err = p.Slice(3, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = p.Slice(0, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestWindow(t *testing.T) {
	p, err := FromString(alphabet.DNA, "ACGTACGTACGTACGTACGTACGTACGTACGTTT")
	require.NoError(t, err)

	// ACGT = 00 01 10 11 = 0x1B per byte.
	assert.Equal(t, uint64(0x1B1B1B1B1B1B1B1B), p.Window(0))

	// Shifted by one symbol: CGTA CGTA ...
	w := p.Window(1)
	assert.Equal(t, uint64(0x6C), w>>56)

	// Past the end the window is zero-padded.
	assert.Equal(t, uint64(0xF0)<<56, p.Window(32))
	assert.Equal(t, uint64(0), p.Window(34))

	// Each symbol in the window matches Code.
	for i := 0; i < p.Len(); i++ {
		w := p.Window(i)
		for j := 0; j < 32 && i+j < p.Len(); j++ {
			got := alphabet.Code(w >> (62 - 2*j) & 3)
			require.Equal(t, p.Code(i+j), got, "i=%d j=%d", i, j)
		}
	}
}

func TestWindowProtein(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	raw := randomSymbols(rng, alphabet.Protein, 40)
	p, err := FromSymbols(alphabet.Protein, raw)
	require.NoError(t, err)

	for i := 0; i < p.Len(); i++ {
		w := p.Window(i)
		for j := 0; j < 12 && i+j < p.Len(); j++ {
			got := alphabet.Code(w >> (59 - 5*uint(j)) & 31)
			require.Equal(t, p.Code(i+j), got, "i=%d j=%d", i, j)
		}
	}
}

func TestEqualAndMetadata(t *testing.T) {
	p, err := FromString(alphabet.DNA, "ACGT")
	require.NoError(t, err)
	q, err := FromString(alphabet.DNA, "ACGT")
	require.NoError(t, err)
	r, err := FromString(alphabet.RNA, "ACGU")
	require.NoError(t, err)

	assert.True(t, p.Equal(q))
	assert.False(t, p.Equal(r))

	named := p.WithID("chr1").WithDescription("test contig")
	assert.Equal(t, Metadata{ID: "chr1", Description: "test contig"}, named.Metadata())
	assert.Equal(t, Metadata{}, p.Metadata())
	assert.True(t, named.Equal(p))
}
