package template

import (
	"errors"
	"fmt"

	"github.com/dgpv/bip32template-go/token"
)

const (
	DefaultMaxSections         = 16
	DefaultMaxRangesPerSection = 8
)

type Option func(*options)

type options struct {
	onlyPath      bool
	unambiguous   bool
	prefix        *bool
	maxSections   int
	maxRanges     int
	markers       []string
	defaultMarker string
}

// OnlyPath restricts parsing to concrete paths: no wildcards,
// lists or ranges, only numbers with optional hardened markers.
func OnlyPath() Option {
	return func(o *options) { o.onlyPath = true }
}

// Unambiguous rejects templates whose textual form is not the only
// spelling of the index set: adjacent ranges that should have been
// written as one become an error instead of being coalesced.
func Unambiguous() Option {
	return func(o *options) { o.unambiguous = true }
}

// Full requires the "m/" root prefix instead of deriving the
// partial flag from its presence.
func Full() Option {
	return func(o *options) { v := true; o.prefix = &v }
}

// Partial forbids the "m/" root prefix instead of deriving the
// partial flag from its presence.
func Partial() Option {
	return func(o *options) { v := false; o.prefix = &v }
}

// MaxSections bounds the template depth; n <= 0 means no bound.
// The default is DefaultMaxSections.
func MaxSections(n int) Option {
	return func(o *options) { o.maxSections = n }
}

// MaxRangesPerSection bounds the number of ranges in one section
// after coalescing; n <= 0 means no bound. The default is
// DefaultMaxRangesPerSection.
func MaxRangesPerSection(n int) Option {
	return func(o *options) { o.maxRanges = n }
}

// HardenedMarkers restricts the accepted hardened marker strings to
// a non-empty subset of the package's accepted markers. The first
// marker encountered in the input still fixes the marker for the
// remainder of the parse.
func HardenedMarkers(ms ...string) Option {
	return func(o *options) { o.markers = ms }
}

// DefaultMarker sets the marker recorded on the template when the
// input carries no hardened marker. It must be one of the accepted
// markers.
func DefaultMarker(m string) Option {
	return func(o *options) { o.defaultMarker = m }
}

func newOptions() *options {
	return &options{
		maxSections: DefaultMaxSections,
		maxRanges:   DefaultMaxRangesPerSection,
		markers:     acceptedMarkers,
	}
}

func (o *options) scanOpts() ([]token.ScanOpt, error) {
	if len(o.markers) == 0 {
		return nil, fmt.Errorf("%w: empty marker set", ErrUnknownMarker)
	}
	ms := make([]byte, len(o.markers))
	for i, m := range o.markers {
		if !markerAccepted(m) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMarker, m)
		}
		ms[i] = m[0]
	}
	if o.defaultMarker != "" {
		found := false
		for _, m := range o.markers {
			if m == o.defaultMarker {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMarker, o.defaultMarker)
		}
	}
	so := []token.ScanOpt{token.Markers(ms...)}
	if o.onlyPath {
		so = append(so, token.OnlyPath())
	}
	return so, nil
}

// Parse scans and builds a template from its textual form. The
// result is all-or-nothing: any failure rejects the input in full,
// as a *ParseError carrying the zero-based offset of the first
// position the input could not be accepted at.
func Parse(in string, opts ...Option) (*Template, error) {
	o := newOptions()
	for _, f := range opts {
		f(o)
	}
	so, err := o.scanOpts()
	if err != nil {
		return nil, err
	}
	toks, err := token.Scan(in, so...)
	if err != nil {
		var se *token.ScanError
		if errors.As(err, &se) {
			pe := &ParseError{Err: se.Err, Pos: se.Pos, Value: se.Value}
			if errors.Is(se.Err, token.ErrEmpty) {
				pe.Err = ErrEmptyTemplate
			}
			return nil, pe
		}
		return nil, err
	}
	return build(toks, o)
}

// build assembles scanner output into sections, rejecting inputs
// that are syntactically well formed but semantically invalid.
func build(toks []token.Token, o *options) (*Template, error) {
	i := 0
	partial := true
	if toks[0].Kind == token.KindPrefix {
		partial = false
		i++
	}
	if o.prefix != nil {
		if *o.prefix && partial {
			return nil, parseErr(ErrMissingPrefix, 0)
		}
		if !*o.prefix && !partial {
			return nil, parseErr(ErrUnexpectedPrefix, 0)
		}
	}
	var (
		secs   []Section
		marker string
	)
	for i < len(toks) {
		if o.maxSections > 0 && len(secs) == o.maxSections {
			return nil, parseErr(ErrTooManySections, toks[i].Pos)
		}
		var sec Section
		switch toks[i].Kind {
		case token.KindNumber:
			sec = Section{{Start: toks[i].Value, End: toks[i].Value}}
			i++
		case token.KindWildcard:
			sec = Section{{Start: 0, End: MaxIndexValue}}
			i++
		default: // token.KindListOpen
			var err error
			sec, i, err = buildList(toks, i+1, o)
			if err != nil {
				return nil, err
			}
		}
		if i < len(toks) && toks[i].Kind == token.KindHardened {
			if len(secs) > 0 && !secs[len(secs)-1].IsHardened() {
				return nil, parseErr(ErrHardenedAfterUnhardened, toks[i].Pos)
			}
			marker = string(byte(toks[i].Value))
			for j := range sec {
				sec[j].Start += HardenedIndexStart
				sec[j].End += HardenedIndexStart
			}
			i++
		}
		secs = append(secs, sec)
		if i < len(toks) {
			// the scanner guarantees a slash here
			i++
		}
	}
	if marker == "" {
		marker = o.defaultMarker
		if marker == "" {
			marker = o.markers[0]
		}
	}
	return &Template{sections: secs, partial: partial, marker: marker}, nil
}

// buildList consumes the items of one bracketed list, starting at
// the token after the opening bracket, and returns the section and
// the index of the token after the closing bracket.
func buildList(toks []token.Token, i int, o *options) (Section, int, error) {
	var sec Section
	for {
		lo := toks[i].Value
		hi := lo
		wasOpen := false
		i++
		if toks[i].Kind == token.KindDash {
			hi = toks[i+1].Value
			wasOpen = true
			i += 2
		}
		d := toks[i] // KindComma or KindListClose
		last := d.Kind == token.KindListClose
		if !last && o.maxRanges > 0 && len(sec) == o.maxRanges-1 {
			return nil, 0, parseErr(ErrTooManyRanges, d.Pos)
		}
		if err := checkRange(sec, lo, hi, wasOpen, last, d.Pos, o); err != nil {
			return nil, 0, err
		}
		if n := len(sec); n > 0 && sec[n-1].End+1 == lo {
			sec[n-1].End = hi
		} else {
			sec = append(sec, Range{Start: lo, End: hi})
		}
		i++
		if last {
			return sec, i, nil
		}
	}
}

func checkRange(sec Section, lo, hi uint32, wasOpen, last bool, pos int, o *options) error {
	if lo == 0 && hi == MaxIndexValue {
		return parseErr(ErrWildcardAsRange, pos)
	}
	if lo == hi {
		if last && len(sec) == 0 {
			return parseErr(ErrSingleIndexAsRange, pos)
		}
		if wasOpen {
			return parseErr(ErrRangeStartEqualsEnd, pos)
		}
	}
	if lo > hi {
		return parseErr(ErrRangeOrder, pos)
	}
	if len(sec) == 0 {
		return nil
	}
	prev := sec[len(sec)-1]
	if o.unambiguous && prev.End+1 == lo {
		return parseErr(ErrRangesAdjacent, pos)
	}
	if prev.Start > lo {
		return parseErr(ErrRangeOrder, pos)
	}
	if prev.End >= lo {
		return parseErr(ErrRangesIntersect, pos)
	}
	return nil
}
