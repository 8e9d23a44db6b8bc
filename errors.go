package seqpack

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/internal/chunk"
	"github.com/hupe1980/seqpack/internal/match"
	"github.com/hupe1980/seqpack/internal/scheduler"
	"github.com/hupe1980/seqpack/persistence"
	"github.com/hupe1980/seqpack/sequence"
)

var (
	// ErrInvalidSymbol is returned for input outside the alphabet.
	// The error is an *InvalidSymbolError carrying the position.
	ErrInvalidSymbol = alphabet.ErrInvalidSymbol

	// ErrCorruptCode is returned when a packed value is outside the alphabet.
	ErrCorruptCode = alphabet.ErrCorruptCode

	// ErrNoComplement is returned when complementing protein.
	ErrNoComplement = alphabet.ErrNoComplement

	// ErrAlphabetMismatch is returned when combining different alphabets.
	ErrAlphabetMismatch = sequence.ErrAlphabetMismatch

	// ErrIndexOutOfRange is returned for positions outside a sequence.
	ErrIndexOutOfRange = sequence.ErrIndexOutOfRange

	// ErrInvalidChunking is returned for a non-positive chunk size or negative overlap.
	ErrInvalidChunking = chunk.ErrInvalidChunking

	// ErrCancelled is returned when a search is cancelled between chunks.
	ErrCancelled = scheduler.ErrCancelled

	// ErrChecksum is returned when a saved sequence fails its CRC32C check.
	ErrChecksum = persistence.ErrChecksum

	// ErrNotFound is returned when loading a name that was never saved.
	ErrNotFound = persistence.ErrNotFound

	// ErrInvalidArgument is returned for bad search parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownKind is returned for an unregistered alphabet kind.
	ErrUnknownKind = errors.New("unknown alphabet kind")

	// ErrMemoryLimit is returned when building a sequence would exceed the
	// configured memory limit.
	ErrMemoryLimit = errors.New("memory limit exceeded")
)

// InvalidSymbolError reports the first offending input position.
type InvalidSymbolError = alphabet.InvalidSymbolError

// CorruptCodeError reports an out-of-range packed code.
type CorruptCodeError = alphabet.CorruptCodeError

// ErrMemoryLimitExceeded carries the sizes involved in a rejected build.
//
// It matches ErrMemoryLimit via errors.Is.
type ErrMemoryLimitExceeded struct {
	Requested int64
	InUse     int64
	Limit     int64
}

func (e *ErrMemoryLimitExceeded) Error() string {
	return fmt.Sprintf("memory limit exceeded: requested %d bytes, %d of %d in use", e.Requested, e.InUse, e.Limit)
}

func (e *ErrMemoryLimitExceeded) Unwrap() error { return ErrMemoryLimit }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, match.ErrEmptyPattern) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	// Context errors raised outside the scheduler (slot acquisition).
	if !errors.Is(err, ErrCancelled) && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	return err
}
