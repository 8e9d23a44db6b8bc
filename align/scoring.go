package align

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySequence is returned when either input has no symbols.
	ErrEmptySequence = errors.New("empty sequence")

	// ErrInvalidScoring is returned for scoring schemes that reward gaps or
	// exceed the supported magnitude.
	ErrInvalidScoring = errors.New("invalid scoring")

	// ErrTooLarge is returned when the score matrices would exceed MaxCells.
	ErrTooLarge = errors.New("alignment too large")

	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("unknown alignment mode")
)

// MaxCells bounds len(a)+1 times len(b)+1 for Align.
const MaxCells = 1 << 28

// maxScore bounds the magnitude of every Scoring field.
const maxScore = 1 << 20

// Mode selects the alignment algorithm.
type Mode uint8

// Alignment modes.
const (
	Global Mode = iota
	Local
	SemiGlobal
)

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Local:
		return "local"
	case SemiGlobal:
		return "semi-global"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode parses "global" (or "nw"), "local" (or "sw") and "semi-global"
// (or "semiglobal", "semi"), ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global", "nw":
		return Global, nil
	case "local", "sw":
		return Local, nil
	case "semi-global", "semiglobal", "semi":
		return SemiGlobal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Scoring is a linear substitution score with affine gap penalties.
// Penalties are expressed as negative scores.
type Scoring struct {
	Match     int `yaml:"match" json:"match"`
	Mismatch  int `yaml:"mismatch" json:"mismatch"`
	GapOpen   int `yaml:"gap_open" json:"gap_open"`
	GapExtend int `yaml:"gap_extend" json:"gap_extend"`

	// Ambiguity scores IUPAC codes as a match when their base sets
	// intersect. It has no effect on alphabets without ambiguity codes.
	Ambiguity bool `yaml:"ambiguity,omitempty" json:"ambiguity,omitempty"`
}

// DefaultScoring returns match 2, mismatch -1, gap open -2, gap extend -1.
func DefaultScoring() Scoring {
	return Scoring{Match: 2, Mismatch: -1, GapOpen: -2, GapExtend: -1}
}

// Validate checks that gaps are never rewarded and all scores are in range.
func (s Scoring) Validate() error {
	if s.GapOpen > 0 || s.GapExtend > 0 {
		return fmt.Errorf("%w: gap scores must not be positive (open %d, extend %d)", ErrInvalidScoring, s.GapOpen, s.GapExtend)
	}
	for _, v := range []int{s.Match, s.Mismatch, s.GapOpen, s.GapExtend} {
		if v < -maxScore || v > maxScore {
			return fmt.Errorf("%w: score %d out of range", ErrInvalidScoring, v)
		}
	}
	return nil
}
