package sequence

import (
	"encoding/binary"

	"github.com/hupe1980/seqpack/alphabet"
)

// Symbols are packed MSB-first into a big-endian bit stream: symbol i
// occupies bits [i*bits, (i+1)*bits) counted from the top of byte 0.
// Widths up to 8 bits span at most two bytes.

func packedSize(length int, bits uint) int {
	return int((uint64(length)*uint64(bits) + 7) / 8)
}

func getCode(buf []byte, i int, bits uint) alphabet.Code {
	off := uint64(i) * uint64(bits)
	idx := off >> 3
	shift := uint(off & 7)
	w := uint16(buf[idx]) << 8
	if shift+bits > 8 {
		w |= uint16(buf[idx+1])
	}
	return alphabet.Code((w >> (16 - bits - shift)) & (1<<bits - 1))
}

// putCode ORs code into a zeroed slot.
func putCode(buf []byte, i int, bits uint, code alphabet.Code) {
	off := uint64(i) * uint64(bits)
	idx := off >> 3
	shift := uint(off & 7)
	v := uint16(code) << (16 - bits - shift)
	buf[idx] |= byte(v >> 8)
	if shift+bits > 8 {
		buf[idx+1] |= byte(v)
	}
}

// setCode overwrites the slot of symbol i.
func setCode(buf []byte, i int, bits uint, code alphabet.Code) {
	off := uint64(i) * uint64(bits)
	idx := off >> 3
	shift := uint(off & 7)
	mask := uint16(1<<bits-1) << (16 - bits - shift)
	v := uint16(code) << (16 - bits - shift)
	buf[idx] = buf[idx]&^byte(mask>>8) | byte(v>>8)
	if shift+bits > 8 {
		buf[idx+1] = buf[idx+1]&^byte(mask) | byte(v)
	}
}

// window64 returns the 64 bits of the stream starting at bit offset off,
// zero-padded past the end of buf.
func window64(buf []byte, off uint64) uint64 {
	idx := int(off >> 3)
	shift := uint(off & 7)

	var w uint64
	if idx+8 <= len(buf) {
		w = binary.BigEndian.Uint64(buf[idx:])
	} else {
		for k := 0; k < 8; k++ {
			w <<= 8
			if idx+k < len(buf) {
				w |= uint64(buf[idx+k])
			}
		}
	}
	if shift == 0 {
		return w
	}
	var next uint64
	if idx+8 < len(buf) {
		next = uint64(buf[idx+8])
	}
	return w<<shift | next>>(8-shift)
}

// packer appends codes into a fresh buffer.
type packer struct {
	buf  []byte
	bits uint
	n    int
}

func newPacker(length int, bits uint) *packer {
	return &packer{buf: make([]byte, packedSize(length, bits)), bits: bits}
}

func (p *packer) put(code alphabet.Code) {
	putCode(p.buf, p.n, p.bits, code)
	p.n++
}
