package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedChar   = errors.New("unexpected character")
	ErrInvalidChar      = errors.New("invalid character")
	ErrUnexpectedSpace  = errors.New("unexpected space")
	ErrUnexpectedSlash  = errors.New("unexpected slash")
	ErrUnexpectedEnd    = errors.New("unexpected end of input")
	ErrUnexpectedMarker = errors.New("unexpected hardened marker")
	ErrDigitExpected    = errors.New("digit expected")
	ErrLeadingZero      = errors.New("index has a leading zero")
	ErrIndexTooBig      = errors.New("index out of range")
	ErrEmpty            = errors.New("empty template")
)

// ScanError reports the first position at which the grammar
// could not be extended. Pos is a zero-based byte offset into
// the scanned input. Value is set for ErrIndexTooBig and holds
// the accumulated literal value at the offending digit.
type ScanError struct {
	Err   error
	Pos   int
	Value uint64
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

func (e *ScanError) Error() string {
	if errors.Is(e.Err, ErrIndexTooBig) {
		return fmt.Sprintf("%s (%d) at position %d", e.Err.Error(), e.Value, e.Pos)
	}
	return fmt.Sprintf("%s at position %d", e.Err.Error(), e.Pos)
}

func scanErr(err error, pos int) *ScanError {
	return &ScanError{Err: err, Pos: pos}
}
