package alphabet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol is the sentinel matched by InvalidSymbolError.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrCorruptCode is the sentinel matched by CorruptCodeError.
	ErrCorruptCode = errors.New("corrupt code")

	// ErrNoComplement is returned for complement operations on protein.
	ErrNoComplement = errors.New("alphabet has no complement")
)

// InvalidSymbolError reports a character outside the declared alphabet.
// Position is -1 when the symbol was encoded outside of a sequence scan.
type InvalidSymbolError struct {
	Position int
	Symbol   byte
	Kind     Kind
}

func (e *InvalidSymbolError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("invalid symbol %q for %s alphabet", e.Symbol, e.Kind)
	}
	return fmt.Sprintf("invalid symbol %q at position %d for %s alphabet", e.Symbol, e.Position, e.Kind)
}

func (e *InvalidSymbolError) Unwrap() error { return ErrInvalidSymbol }

// CorruptCodeError reports a packed value outside the alphabet's code range.
// It indicates a buffer that was not produced by the sequence encoder.
type CorruptCodeError struct {
	Code     Code
	Position int
	Kind     Kind
}

func (e *CorruptCodeError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("corrupt code %d for %s alphabet", e.Code, e.Kind)
	}
	return fmt.Sprintf("corrupt code %d at position %d for %s alphabet", e.Code, e.Position, e.Kind)
}

func (e *CorruptCodeError) Unwrap() error { return ErrCorruptCode }
