//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	hasASIMD = cpu.ARM64.HasASIMD
	hasSVE2 = cpu.ARM64.HasSVE2
	// bits.OnesCount64 lowers to the NEON CNT/ADDV pair, so the
	// candidate counts in the SWAR filter are hardware popcounts here.
	hasPOPCNT = hasASIMD
	initCapabilities()
}
