package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/internal/hash"
	"github.com/hupe1980/seqpack/sequence"
)

const (
	// Magic identifies an encoded sequence.
	Magic = "SQPK"
	// Version is the current format version.
	Version uint8 = 1

	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 24

	crcOffset = 20
)

var (
	// ErrInvalidMagic is returned for data that is not an encoded sequence.
	ErrInvalidMagic = errors.New("invalid magic")
	// ErrInvalidVersion is returned for an unsupported format version.
	ErrInvalidVersion = errors.New("unsupported format version")
	// ErrCorruptHeader is returned for inconsistent header fields or payloads.
	ErrCorruptHeader = errors.New("corrupt header")
	// ErrChecksum is returned when the stored CRC32C does not match.
	ErrChecksum = errors.New("checksum mismatch")
	// ErrNilSequence is returned when encoding a nil sequence.
	ErrNilSequence = errors.New("nil sequence")
)

// ChecksumMismatchError carries the expected and computed checksums.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksum }

// Header is the decoded fixed header.
type Header struct {
	Version     uint8
	Kind        alphabet.Kind
	Compression Compression
	Length      uint64
	PayloadLen  uint32
	Checksum    uint32
}

// Encode serializes p. c is a preference: the header records
// CompressionNone when compressing does not shrink the buffer.
func Encode(p *sequence.Packed, c Compression) ([]byte, error) {
	if p == nil {
		return nil, ErrNilSequence
	}
	payload, used, err := compress(p.Bytes(), c)
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds format limit", ErrCorruptHeader, len(payload))
	}

	out := make([]byte, HeaderSize+len(payload))
	copy(out[0:4], Magic)
	out[4] = Version
	out[5] = byte(p.Kind())
	out[6] = byte(used)
	out[7] = 0
	binary.LittleEndian.PutUint64(out[8:16], uint64(p.Len()))
	binary.LittleEndian.PutUint32(out[16:20], uint32(len(payload)))
	copy(out[HeaderSize:], payload)

	binary.LittleEndian.PutUint32(out[crcOffset:HeaderSize], checksum(out))
	return out, nil
}

// checksum covers the header up to the CRC field and the payload.
func checksum(data []byte) uint32 {
	h := hash.NewCRC32C()
	_, _ = h.Write(data[:crcOffset])
	_, _ = h.Write(data[HeaderSize:])
	return h.Sum32()
}

// ReadHeader parses and validates the fixed header without touching the
// payload.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d", ErrCorruptHeader, len(data), HeaderSize)
	}
	if string(data[0:4]) != Magic {
		return Header{}, fmt.Errorf("%w: got %q", ErrInvalidMagic, data[0:4])
	}
	h := Header{
		Version:     data[4],
		Kind:        alphabet.Kind(data[5]),
		Compression: Compression(data[6]),
		Length:      binary.LittleEndian.Uint64(data[8:16]),
		PayloadLen:  binary.LittleEndian.Uint32(data[16:20]),
		Checksum:    binary.LittleEndian.Uint32(data[20:24]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if data[7] != 0 {
		return Header{}, fmt.Errorf("%w: reserved byte 0x%02x", ErrCorruptHeader, data[7])
	}
	if h.Compression > CompressionZSTD {
		return Header{}, fmt.Errorf("%w: unknown compression %d", ErrCorruptHeader, uint8(h.Compression))
	}
	if uint64(len(data)-HeaderSize) != uint64(h.PayloadLen) {
		return Header{}, fmt.Errorf("%w: payload length %d, have %d bytes", ErrCorruptHeader, h.PayloadLen, len(data)-HeaderSize)
	}
	return h, nil
}

// Decode parses data produced by Encode.
func Decode(data []byte) (*sequence.Packed, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	if sum := checksum(data); sum != h.Checksum {
		return nil, &ChecksumMismatchError{Expected: h.Checksum, Actual: sum}
	}

	a, ok := alphabet.ByKind(h.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown alphabet kind %d", ErrCorruptHeader, uint8(h.Kind))
	}
	bits := uint64(a.BitsPerSymbol())
	if h.Length > math.MaxInt64/bits || h.Length > uint64(math.MaxInt) {
		return nil, fmt.Errorf("%w: length %d", ErrCorruptHeader, h.Length)
	}
	size := (h.Length*bits + 7) / 8
	if size > uint64(math.MaxInt32)*8 {
		return nil, fmt.Errorf("%w: length %d", ErrCorruptHeader, h.Length)
	}

	buf, err := decompress(data[HeaderSize:], h.Compression, int(size))
	if err != nil {
		return nil, err
	}
	return sequence.FromRaw(a, int(h.Length), buf)
}
