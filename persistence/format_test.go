package persistence

import (
	"encoding/binary"
	"math/rand"
	"strings"
	"testing"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPacked(t *testing.T, rng *rand.Rand, a *alphabet.Alphabet, n int) *sequence.Packed {
	t.Helper()
	syms := a.Symbols()
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = syms[rng.Intn(len(syms))]
	}
	p, err := sequence.FromSymbols(a, raw)
	require.NoError(t, err)
	return p
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabets := []*alphabet.Alphabet{alphabet.DNA, alphabet.RNA, alphabet.DNAIUPAC, alphabet.Protein}
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		for _, a := range alphabets {
			for _, n := range []int{0, 1, 5, 33, 1000} {
				p := randomPacked(t, rng, a, n)
				data, err := Encode(p, c)
				require.NoError(t, err)

				got, err := Decode(data)
				require.NoError(t, err, "%s %s n=%d", c, a, n)
				assert.True(t, p.Equal(got), "%s %s n=%d", c, a, n)
			}
		}
	}
}

func TestEncodeCompressesRepetitiveData(t *testing.T) {
	p, err := sequence.FromString(alphabet.DNA, strings.Repeat("ACGT", 4096))
	require.NoError(t, err)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		data, err := Encode(p, c)
		require.NoError(t, err)
		h, err := ReadHeader(data)
		require.NoError(t, err)
		assert.Equal(t, c, h.Compression)
		assert.Less(t, len(data), p.SizeBytes())
		assert.Equal(t, uint64(p.Len()), h.Length)
	}
}

func TestEncodeFallsBackToNone(t *testing.T) {
	p, err := sequence.FromString(alphabet.DNA, "ACGTTGCA")
	require.NoError(t, err)

	data, err := Encode(p, CompressionZSTD)
	require.NoError(t, err)
	h, err := ReadHeader(data)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, h.Compression)
	assert.Len(t, data, HeaderSize+p.SizeBytes())
}

func TestDecodeDetectsCorruption(t *testing.T) {
	p, err := sequence.FromString(alphabet.DNA, strings.Repeat("ACGTTGCA", 100))
	require.NoError(t, err)
	data, err := Encode(p, CompressionLZ4)
	require.NoError(t, err)

	t.Run("payload bit flip", func(t *testing.T) {
		bad := append([]byte{}, data...)
		bad[HeaderSize+3] ^= 0x10
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrChecksum)

		var cme *ChecksumMismatchError
		require.ErrorAs(t, err, &cme)
		assert.NotEqual(t, cme.Expected, cme.Actual)
	})

	t.Run("length field", func(t *testing.T) {
		bad := append([]byte{}, data...)
		binary.LittleEndian.PutUint64(bad[8:16], 3)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("magic", func(t *testing.T) {
		bad := append([]byte{}, data...)
		bad[0] = 'X'
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		bad := append([]byte{}, data...)
		bad[4] = 9
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(data[:len(data)-1])
		assert.ErrorIs(t, err, ErrCorruptHeader)
		_, err = Decode(data[:10])
		assert.ErrorIs(t, err, ErrCorruptHeader)
	})
}

func TestDecodeRejectsCorruptCodes(t *testing.T) {
	// A hand-built protein payload whose only code (31) is out of range,
	// with a valid checksum.
	data := make([]byte, HeaderSize+1)
	copy(data, Magic)
	data[4] = Version
	data[5] = byte(alphabet.KindProtein)
	binary.LittleEndian.PutUint64(data[8:16], 1)
	binary.LittleEndian.PutUint32(data[16:20], 1)
	data[HeaderSize] = 0xF8
	binary.LittleEndian.PutUint32(data[20:24], checksum(data))

	_, err := Decode(data)
	assert.ErrorIs(t, err, alphabet.ErrCorruptCode)
}

func TestEncodeNil(t *testing.T) {
	_, err := Encode(nil, CompressionNone)
	assert.ErrorIs(t, err, ErrNilSequence)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.Error(t, err)
}
