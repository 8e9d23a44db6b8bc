package simd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast(t *testing.T) {
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), Broadcast(3, 2))
	assert.Equal(t, uint64(0xAAAAAAAAAAAAAAAA), Broadcast(2, 2))
	assert.Equal(t, uint64(0x5555555555555555), Broadcast(0x5, 4))
	assert.Equal(t, uint64(0), Broadcast(0, 4))
}

func TestZeroLanes(t *testing.T) {
	// Lanes (2-bit, MSB first): 00 01 00 11 ...rest zero.
	x := uint64(0x13) << 56
	z := ZeroLanes(x, 2)

	var lanes []int
	for z != 0 {
		var lane int
		lane, z = NextLane(z, 2)
		lanes = append(lanes, lane)
	}
	require.NotEmpty(t, lanes)
	assert.Equal(t, 0, lanes[0])
	assert.Equal(t, 2, lanes[1])
	assert.Len(t, lanes, 32-2)
	assert.NotContains(t, lanes, 1)
	assert.NotContains(t, lanes, 3)
}

func TestZeroLanesMatchesScalar(t *testing.T) {
	words := []uint64{0, ^uint64(0), 0x0123456789ABCDEF, 0xF0F00F0F12345678, 0x8000000000000001}
	for _, width := range []uint{2, 4, 8} {
		lanes := LanesPerWord(width)
		for _, w := range words {
			for code := uint64(0); code < 1<<width && code < 16; code++ {
				z := ZeroLanes(w^Broadcast(code, width), width)
				for lane := 0; lane < lanes; lane++ {
					shift := uint(64) - uint(lane+1)*width
					want := (w>>shift)&(1<<width-1) == code
					got := z>>shift&1 == 1
					assert.Equal(t, want, got, "width=%d word=%x code=%d lane=%d", width, w, code, lane)
				}
				assert.Equal(t, CountLanes(z), countScalar(w, code, width))
			}
		}
	}
}

func countScalar(w, code uint64, width uint) int {
	n := 0
	for lane := 0; lane < LanesPerWord(width); lane++ {
		shift := uint(64) - uint(lane+1)*width
		if (w>>shift)&(1<<width-1) == code {
			n++
		}
	}
	return n
}

func TestNextLaneEmpty(t *testing.T) {
	lane, rest := NextLane(0, 4)
	assert.Equal(t, -1, lane)
	assert.Zero(t, rest)
}

func TestPrefixMask(t *testing.T) {
	assert.Equal(t, uint64(0xF000000000000000), PrefixMask(2, 2))
	assert.Equal(t, uint64(0xFF00000000000000), PrefixMask(2, 4))
	assert.Equal(t, ^uint64(0), PrefixMask(32, 2))
	assert.Equal(t, ^uint64(0), PrefixMask(40, 2))
	assert.Zero(t, PrefixMask(0, 2))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("SWAR")
	require.True(t, ok)
	assert.Equal(t, SWAR, m)

	m, ok = ParseMode("generic")
	require.True(t, ok)
	assert.Equal(t, Scalar, m)

	_, ok = ParseMode("avx9000")
	assert.False(t, ok)
}

func TestActiveMode(t *testing.T) {
	assert.Equal(t, ActiveMode() == SWAR, WordParallel())
	assert.NotEqual(t, "unknown", ActiveISA().String())
}

func TestPopcountCapability(t *testing.T) {
	switch runtime.GOARCH {
	case "arm64":
		assert.Equal(t, HasASIMD(), HasPOPCNT())
		if HasASIMD() {
			assert.Contains(t, []ISA{NEON, SVE2}, ActiveISA())
		}
	case "amd64":
		assert.False(t, HasASIMD())
	default:
		assert.False(t, HasPOPCNT())
	}
}
