package template

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dgpv/bip32template-go/token"
)

const h = HardenedIndexStart

func mustParse(t *testing.T, in string, opts ...Option) *Template {
	t.Helper()
	tpl, err := Parse(in, opts...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", in, err)
	}
	return tpl
}

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		opts     []Option
		partial  bool
		marker   string
		sections []Section
	}{
		{
			in:     "m/0h/[1-9,23]/*",
			marker: "h",
			sections: []Section{
				{{h, h}},
				{{1, 9}, {23, 23}},
				{{0, MaxIndexValue}},
			},
		},
		{
			in:      "0h/1/2",
			partial: true,
			marker:  "h",
			sections: []Section{
				{{h, h}},
				{{1, 1}},
				{{2, 2}},
			},
		},
		{
			in:     "m/0'/1'/2",
			marker: "'",
			sections: []Section{
				{{h, h}},
				{{h + 1, h + 1}},
				{{2, 2}},
			},
		},
		{
			in:       "*",
			partial:  true,
			marker:   "h",
			sections: []Section{{{0, MaxIndexValue}}},
		},
		{
			in:       "m/*h",
			marker:   "h",
			sections: []Section{{{h, h + MaxIndexValue}}},
		},
		{
			in:       "m/[1-2,5]",
			marker:   "h",
			sections: []Section{{{1, 2}, {5, 5}}},
		},
		{
			in:       "m/2147483647h",
			marker:   "h",
			sections: []Section{{{h + MaxIndexValue, h + MaxIndexValue}}},
		},
		{
			in:     "m/44h/0h/0h/[0-1]/*",
			marker: "h",
			sections: []Section{
				{{h + 44, h + 44}},
				{{h, h}},
				{{h, h}},
				{{0, 1}},
				{{0, MaxIndexValue}},
			},
		},
		{
			in:       "m/0h/1/2",
			opts:     []Option{OnlyPath()},
			marker:   "h",
			sections: []Section{{{h, h}}, {{1, 1}}, {{2, 2}}},
		},
	}
	for _, tc := range tests {
		tpl := mustParse(t, tc.in, tc.opts...)
		if tpl.IsPartial() != tc.partial {
			t.Errorf("Parse(%q).IsPartial() = %v, want %v", tc.in, tpl.IsPartial(), tc.partial)
		}
		if tpl.HardenedMarker() != tc.marker {
			t.Errorf("Parse(%q).HardenedMarker() = %q, want %q", tc.in, tpl.HardenedMarker(), tc.marker)
		}
		if d := cmp.Diff(tc.sections, tpl.Sections()); d != "" {
			t.Errorf("Parse(%q) sections: (-want +got)\n%s", tc.in, d)
		}
		if got := tpl.String(); got != tc.in {
			t.Errorf("Parse(%q).String() = %q", tc.in, got)
		}
	}
}

// Adjacent ranges coalesce, so some valid inputs render shorter.
func TestParseRewrite(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"m/[1,2]", "m/[1-2]"},
		{"m/[1-4,5-9]", "m/[1-9]"},
		{"m/[1,2,3]h", "m/[1-3]h"},
		{"m/[0-2147483646,2147483647]", "m/*"},
	}
	for _, tc := range tests {
		tpl := mustParse(t, tc.in)
		if got := tpl.String(); got != tc.out {
			t.Errorf("Parse(%q).String() = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		opts []Option
		err  error
		pos  int
	}{
		{in: "", err: ErrEmptyTemplate, pos: 0},
		{in: "m/", err: ErrEmptyTemplate, pos: 2},
		{in: "m/[9-1]", err: ErrRangeOrder, pos: 6},
		{in: "m/[5,3]", err: ErrRangeOrder, pos: 6},
		{in: "m/[1-5,3-7]", err: ErrRangesIntersect, pos: 10},
		{in: "m/[5,5]", err: ErrRangesIntersect, pos: 6},
		{in: "m/[5]", err: ErrSingleIndexAsRange, pos: 4},
		{in: "m/[5-5]", err: ErrSingleIndexAsRange, pos: 6},
		{in: "m/[1,5-5]", err: ErrRangeStartEqualsEnd, pos: 8},
		{in: "m/[0-2147483647]", err: ErrWildcardAsRange, pos: 15},
		{in: "0/1h", err: ErrHardenedAfterUnhardened, pos: 3},
		{in: "m/0h/1/2h", err: ErrHardenedAfterUnhardened, pos: 8},
		{
			in:   "m/[1-4,5-9]",
			opts: []Option{Unambiguous()},
			err:  ErrRangesAdjacent,
			pos:  10,
		},
		{
			in:   "m/0/1/2",
			opts: []Option{MaxSections(2)},
			err:  ErrTooManySections,
			pos:  6,
		},
		{
			in:   "m/[1,3,5]",
			opts: []Option{MaxRangesPerSection(2)},
			err:  ErrTooManyRanges,
			pos:  6,
		},
		{in: "0/1", opts: []Option{Full()}, err: ErrMissingPrefix, pos: 0},
		{in: "m/0", opts: []Option{Partial()}, err: ErrUnexpectedPrefix, pos: 0},
		{
			// scanner failures surface with the same error shape
			in:   "m/0/1/[2-3]",
			opts: []Option{OnlyPath()},
			err:  token.ErrUnexpectedChar,
			pos:  6,
		},
		{in: "m/0h/1'", err: token.ErrUnexpectedMarker, pos: 6},
		{in: "m/007", err: token.ErrLeadingZero, pos: 4},
	}
	for _, tc := range tests {
		_, err := Parse(tc.in, tc.opts...)
		if err == nil {
			t.Errorf("Parse(%q): no error, want %v", tc.in, tc.err)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): error %v is not a *ParseError", tc.in, err)
			continue
		}
		if !errors.Is(err, tc.err) || pe.Pos != tc.pos {
			t.Errorf("Parse(%q) = %v at %d, want %v at %d", tc.in, pe.Err, pe.Pos, tc.err, tc.pos)
		}
	}
}

func TestParseMarkerOptions(t *testing.T) {
	if m := mustParse(t, "m/0/1").HardenedMarker(); m != "h" {
		t.Errorf("default marker = %q, want %q", m, "h")
	}
	if m := mustParse(t, "m/0/1", DefaultMarker("'")).HardenedMarker(); m != "'" {
		t.Errorf("marker = %q, want %q", m, "'")
	}
	// a marker in the input overrides the configured default
	if m := mustParse(t, "m/0h/1", DefaultMarker("'")).HardenedMarker(); m != "h" {
		t.Errorf("marker = %q, want %q", m, "h")
	}
	if _, err := Parse("m/0'", HardenedMarkers("h")); err == nil {
		t.Error("Parse with restricted markers accepted the apostrophe")
	}
	if _, err := Parse("m/0", HardenedMarkers("hh")); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("multi-character marker: %v, want ErrUnknownMarker", err)
	}
	if _, err := Parse("m/0", HardenedMarkers()); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("empty marker set: %v, want ErrUnknownMarker", err)
	}
	if _, err := Parse("m/0", HardenedMarkers("x")); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("marker outside the accepted set: %v, want ErrUnknownMarker", err)
	}
	if _, err := Parse("m/0", DefaultMarker("x")); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("unknown default marker: %v, want ErrUnknownMarker", err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"m/0h/[1-9,23]/*",
		"0'/[1-9,23]/*",
		"m/44h/0h/0h/[0-1]/*",
		"*h",
		"m/[1,2]",
		"m/[10-19,30-39]h/5",
	}
	for _, in := range inputs {
		tpl := mustParse(t, in)
		again := mustParse(t, tpl.String())
		if !tpl.Equal(again) {
			t.Errorf("Parse(%q) round trip: %q reparses differently", in, tpl)
		}
	}
}

func TestParseNoBounds(t *testing.T) {
	in := "m/0/1/2/3/4/5/6/7/8/9/10/11/12/13/14/15/16"
	if _, err := Parse(in); !errors.Is(err, ErrTooManySections) {
		t.Fatalf("Parse(%q): %v, want ErrTooManySections", in, err)
	}
	tpl := mustParse(t, in, MaxSections(0))
	if tpl.Depth() != 17 {
		t.Errorf("Depth() = %d, want 17", tpl.Depth())
	}
	list := "m/[1,3,5,7,9,11,13,15,17]"
	if _, err := Parse(list); !errors.Is(err, ErrTooManyRanges) {
		t.Fatalf("Parse(%q): %v, want ErrTooManyRanges", list, err)
	}
	if tpl := mustParse(t, list, MaxRangesPerSection(0)); len(tpl.Sections()[0]) != 9 {
		t.Errorf("ranges = %d, want 9", len(tpl.Sections()[0]))
	}
}
