package simd

import "math/bits"

// SWAR helpers for packed symbol words. A word holds 64/width lanes, lane 0
// in the most significant bits, matching the sequence bit order. Widths
// must be 1, 2, 4 or 8.

// LanesPerWord returns the number of symbols in a 64-bit word.
func LanesPerWord(width uint) int { return 64 / int(width) }

// LowBits returns a word with the least significant bit of every lane set.
func LowBits(width uint) uint64 {
	switch width {
	case 1:
		return ^uint64(0)
	case 2:
		return 0x5555555555555555
	case 4:
		return 0x1111111111111111
	case 8:
		return 0x0101010101010101
	default:
		return 0
	}
}

// Broadcast repeats code in every lane.
func Broadcast(code uint64, width uint) uint64 {
	return LowBits(width) * (code & (1<<width - 1))
}

// ZeroLanes returns a word with the low bit set for every lane of x that
// is entirely zero. Applied to word^Broadcast(c), it marks the lanes equal
// to c.
func ZeroLanes(x uint64, width uint) uint64 {
	t := x
	for s := uint(1); s < width; s <<= 1 {
		t |= t >> s
	}
	return ^t & LowBits(width)
}

// NextLane returns the index of the lowest-numbered lane flagged in mask
// (as produced by ZeroLanes) and the mask with that lane cleared.
// It returns -1 when mask is empty.
func NextLane(mask uint64, width uint) (int, uint64) {
	if mask == 0 {
		return -1, 0
	}
	lz := bits.LeadingZeros64(mask)
	lane := (lz+1)/int(width) - 1
	return lane, mask &^ (1 << uint(63-lz))
}

// PrefixMask returns a mask covering the first n lanes.
func PrefixMask(n int, width uint) uint64 {
	b := uint(n) * width
	if b >= 64 {
		return ^uint64(0)
	}
	return ^(^uint64(0) >> b)
}

// CountLanes returns the number of lanes flagged in mask.
func CountLanes(mask uint64) int { return bits.OnesCount64(mask) }
