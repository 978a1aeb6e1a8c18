package template

import (
	"errors"
	"fmt"
)

var (
	ErrRangeOrder              = errors.New("order of ranges is incorrect")
	ErrRangesIntersect         = errors.New("ranges intersect")
	ErrRangesAdjacent          = errors.New("range starts next to the previous range end, must be a single range")
	ErrWildcardAsRange         = errors.New("range equals wildcard, should be specified as wildcard")
	ErrSingleIndexAsRange      = errors.New("range contains just a single index, should not be a range")
	ErrRangeStartEqualsEnd     = errors.New("range start equals range end, should not be a range")
	ErrHardenedAfterUnhardened = errors.New("hardened derivation specified after unhardened")
	ErrInconsistentRange       = errors.New("range mixes hardened and unhardened indexes")
	ErrEmptyTemplate           = errors.New("template path is empty")
	ErrEmptySection            = errors.New("template section is empty")
	ErrTooManySections         = errors.New("template path is too long")
	ErrTooManyRanges           = errors.New("template path section is too long")
	ErrUnknownMarker           = errors.New("unknown hardened marker")
	ErrMissingPrefix           = errors.New("template must begin with the root prefix")
	ErrUnexpectedPrefix        = errors.New("partial template must not begin with the root prefix")
)

// ParseError is the failure result of Parse. Err discriminates the
// violated rule (a sentinel from this package or from package token)
// and Pos is the zero-based byte offset of the failure in the input.
// Value is set when Err is token.ErrIndexTooBig.
type ParseError struct {
	Err   error
	Pos   int
	Value uint64
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Err.Error(), e.Pos)
}

func parseErr(err error, pos int) *ParseError {
	return &ParseError{Err: err, Pos: pos}
}
