package simd

import (
	"math/bits"
	"os"
	"runtime"
	"strings"
)

// ISA represents the instruction set detected on the host CPU.
type ISA uint8

const (
	// Generic represents a CPU without a recognized vector extension.
	Generic ISA = iota
	// NEON represents ARM64 NEON (ASIMD).
	NEON
	// SVE2 represents ARM64 SVE2.
	SVE2
	// AVX2 represents x86-64 AVX2.
	AVX2
	// AVX512 represents x86-64 AVX-512 (F+BW).
	AVX512
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case NEON:
		return "neon"
	case SVE2:
		return "sve2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// Mode selects how packed symbol windows are compared.
type Mode uint8

const (
	// Scalar compares one symbol at a time.
	Scalar Mode = iota
	// SWAR compares all lanes of a 64-bit word at once.
	SWAR
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case Scalar:
		return "scalar"
	case SWAR:
		return "swar"
	default:
		return "unknown"
	}
}

// ParseMode parses a string into a Mode value.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "generic":
		return Scalar, true
	case "swar":
		return SWAR, true
	default:
		return Scalar, false
	}
}

// Package-level state, set once from the platform init functions.
var (
	activeISA   ISA
	activeMode  Mode
	hasOverride bool

	hasASIMD    bool
	hasSVE2     bool
	hasAVX2     bool
	hasAVX512F  bool
	hasAVX512BW bool
	hasPOPCNT   bool
)

// initCapabilities is called from the platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	activeISA = selectBestISA()
	activeMode = selectMode()

	if override := os.Getenv("SEQPACK_SIMD"); override != "" {
		if m, ok := ParseMode(override); ok {
			hasOverride = true
			activeMode = m
		}
	}
}

func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "arm64":
		// Apple silicon runs NEON faster than its SVE2 support.
		if hasSVE2 && runtime.GOOS != "darwin" {
			return SVE2
		}
		if hasASIMD {
			return NEON
		}
	case "amd64":
		if hasAVX512F && hasAVX512BW {
			return AVX512
		}
		if hasAVX2 {
			return AVX2
		}
	}
	return Generic
}

// selectMode enables word-parallel comparison on 64-bit targets, where a
// uint64 XOR/AND is a single instruction.
func selectMode() Mode {
	if bits.UintSize == 64 {
		return SWAR
	}
	return Scalar
}

// ActiveISA returns the detected ISA.
func ActiveISA() ISA { return activeISA }

// ActiveMode returns the selected comparison mode.
func ActiveMode() Mode { return activeMode }

// WordParallel reports whether the SWAR path is enabled.
func WordParallel() bool { return activeMode == SWAR }

// IsOverridden returns true if SEQPACK_SIMD was set to a valid mode.
func IsOverridden() bool { return hasOverride }

// HasPOPCNT reports hardware population count: POPCNT on x86-64, NEON CNT
// on arm64.
func HasPOPCNT() bool { return hasPOPCNT }

// HasAVX2 returns true if x86-64 AVX2 is available.
func HasAVX2() bool { return hasAVX2 }

// HasASIMD returns true if ARM64 NEON is available.
func HasASIMD() bool { return hasASIMD }
