// Package token scans BIP32 derivation path template strings into
// validated tokens with byte-offset positions.
package token

import (
	"bytes"
	"strings"
)

// Child indexes below the hardened offset fit in 31 bits. The
// hardened offset itself is applied later, when sections are built.
const maxIndexValue = 1<<31 - 1

var defaultMarkers = []byte{'h', '\''}

type ScanOpt func(*scanOpts)

type scanOpts struct {
	onlyPath bool
	markers  []byte
}

// OnlyPath restricts the grammar to concrete paths: every segment
// must be a single number with at most one hardened marker, and the
// wildcard, list, range and comma transitions are removed.
func OnlyPath() ScanOpt {
	return func(o *scanOpts) { o.onlyPath = true }
}

// Markers sets the hardened marker characters the scanner accepts.
// The default set is 'h' and the apostrophe.
func Markers(ms ...byte) ScanOpt {
	return func(o *scanOpts) { o.markers = ms }
}

type state int

const (
	stateSegment       state = iota // at the start of a path segment
	stateNumber                     // scanning a segment-level number
	stateListItem                   // inside [..], before the next item's digit
	stateListNumber                 // scanning a list item number
	stateAfterList                  // just consumed a closing ]
	stateAfterWildcard              // just consumed *
	stateAfterMarker                // just consumed a hardened marker
)

type scanner struct {
	in   string
	opt  *scanOpts
	toks []Token

	st  state
	pos int

	// accepted narrows to the first marker seen; opt.markers keeps
	// the full configured set for error classification.
	accepted []byte

	rangeOpen bool
	num       uint64
	numPos    int
}

// Scan tokenizes a template string, or fails at the first position
// the grammar cannot extend. The scan is forward-only with a single
// dispatch step per character.
func Scan(in string, opts ...ScanOpt) ([]Token, error) {
	o := &scanOpts{markers: defaultMarkers}
	for _, f := range opts {
		f(o)
	}
	s := &scanner{in: in, opt: o, accepted: o.markers}
	return s.run()
}

func (s *scanner) run() ([]Token, error) {
	if strings.HasPrefix(s.in, "m") {
		if len(s.in) == 1 {
			return nil, scanErr(ErrUnexpectedEnd, 1)
		}
		if s.in[1] != '/' {
			return nil, s.unexpected(s.in[1], 1)
		}
		s.emit(KindPrefix, 0, 0)
		s.pos = 2
	}
	for s.pos < len(s.in) {
		if err := s.step(s.in[s.pos]); err != nil {
			return nil, err
		}
		s.pos++
	}
	if err := s.finish(); err != nil {
		return nil, err
	}
	return s.toks, nil
}

func (s *scanner) step(c byte) error {
	switch s.st {
	case stateSegment:
		return s.segment(c)
	case stateNumber:
		return s.number(c)
	case stateListItem:
		return s.listItem(c)
	case stateListNumber:
		return s.listNumber(c)
	case stateAfterList, stateAfterWildcard:
		return s.sectionEnd(c)
	case stateAfterMarker:
		return s.nextSegment(c)
	}
	return nil
}

func (s *scanner) segment(c byte) error {
	switch {
	case asciiDigit(c):
		s.startNumber(c)
		s.st = stateNumber
	case c == '*' && !s.opt.onlyPath:
		s.emit(KindWildcard, s.pos, 0)
		s.st = stateAfterWildcard
	case c == '[' && !s.opt.onlyPath:
		s.emit(KindListOpen, s.pos, 0)
		s.rangeOpen = false
		s.st = stateListItem
	case c == '/':
		return scanErr(ErrUnexpectedSlash, s.pos)
	default:
		return s.unexpected(c, s.pos)
	}
	return nil
}

func (s *scanner) number(c byte) error {
	switch {
	case asciiDigit(c):
		return s.addDigit(c)
	case c == '/':
		s.emitNumber()
		s.emit(KindSlash, s.pos, 0)
		s.st = stateSegment
		return nil
	default:
		s.emitNumber()
		return s.tryMarker(c)
	}
}

func (s *scanner) listItem(c byte) error {
	switch {
	case asciiDigit(c):
		s.startNumber(c)
		s.st = stateListNumber
		return nil
	case c == ' ' || c == '\t':
		return scanErr(ErrUnexpectedSpace, s.pos)
	default:
		return scanErr(ErrDigitExpected, s.pos)
	}
}

func (s *scanner) listNumber(c byte) error {
	switch {
	case asciiDigit(c):
		return s.addDigit(c)
	case c == '-':
		if s.rangeOpen {
			return s.unexpected(c, s.pos)
		}
		s.emitNumber()
		s.emit(KindDash, s.pos, 0)
		s.rangeOpen = true
		s.st = stateListItem
	case c == ',':
		s.emitNumber()
		s.emit(KindComma, s.pos, 0)
		s.rangeOpen = false
		s.st = stateListItem
	case c == ']':
		s.emitNumber()
		s.emit(KindListClose, s.pos, 0)
		s.rangeOpen = false
		s.st = stateAfterList
	default:
		return s.unexpected(c, s.pos)
	}
	return nil
}

func (s *scanner) sectionEnd(c byte) error {
	if c == '/' {
		s.emit(KindSlash, s.pos, 0)
		s.st = stateSegment
		return nil
	}
	return s.tryMarker(c)
}

func (s *scanner) nextSegment(c byte) error {
	if c == '/' {
		s.emit(KindSlash, s.pos, 0)
		s.st = stateSegment
		return nil
	}
	return s.unexpected(c, s.pos)
}

// tryMarker consumes a hardened marker at a section end. The first
// marker encountered fixes the accepted marker character for the
// remainder of the scan.
func (s *scanner) tryMarker(c byte) error {
	if bytes.IndexByte(s.accepted, c) >= 0 {
		s.accepted = []byte{c}
		s.emit(KindHardened, s.pos, uint32(c))
		s.st = stateAfterMarker
		return nil
	}
	if bytes.IndexByte(s.opt.markers, c) >= 0 {
		return scanErr(ErrUnexpectedMarker, s.pos)
	}
	return s.unexpected(c, s.pos)
}

func (s *scanner) finish() error {
	switch s.st {
	case stateNumber:
		s.emitNumber()
		return nil
	case stateAfterList, stateAfterWildcard, stateAfterMarker:
		return nil
	case stateSegment:
		if len(s.toks) == 0 || s.toks[len(s.toks)-1].Kind == KindPrefix {
			return scanErr(ErrEmpty, s.pos)
		}
		return scanErr(ErrUnexpectedEnd, s.pos)
	default:
		return scanErr(ErrUnexpectedEnd, s.pos)
	}
}

func (s *scanner) startNumber(c byte) {
	s.num = uint64(c - '0')
	s.numPos = s.pos
}

func (s *scanner) addDigit(c byte) error {
	if s.num == 0 {
		return scanErr(ErrLeadingZero, s.pos)
	}
	s.num = s.num*10 + uint64(c-'0')
	if s.num > maxIndexValue {
		return &ScanError{Err: ErrIndexTooBig, Pos: s.pos, Value: s.num}
	}
	return nil
}

func (s *scanner) emitNumber() {
	s.emit(KindNumber, s.numPos, uint32(s.num))
}

func (s *scanner) emit(k Kind, pos int, v uint32) {
	s.toks = append(s.toks, Token{Kind: k, Pos: pos, Value: v})
}

func (s *scanner) unexpected(c byte, pos int) *ScanError {
	switch {
	case c == ' ' || c == '\t':
		return scanErr(ErrUnexpectedSpace, pos)
	case asciiDigit(c) || strings.IndexByte("m/[]-,*h'", c) >= 0:
		return scanErr(ErrUnexpectedChar, pos)
	default:
		return scanErr(ErrInvalidChar, pos)
	}
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

