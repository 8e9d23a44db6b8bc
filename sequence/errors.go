package sequence

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seqpack/alphabet"
)

var (
	// ErrNilAlphabet is returned when a constructor receives no alphabet.
	ErrNilAlphabet = errors.New("nil alphabet")

	// ErrIndexOutOfRange is returned for positions outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrAlphabetMismatch is returned when combining sequences of different alphabets.
	ErrAlphabetMismatch = errors.New("alphabet mismatch")

	// ErrUnsupported is returned for operations the alphabet does not define.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrCorruptBuffer is returned by FromRaw for malformed buffers.
	// It matches alphabet.ErrCorruptCode.
	ErrCorruptBuffer = fmt.Errorf("corrupt buffer: %w", alphabet.ErrCorruptCode)
)
