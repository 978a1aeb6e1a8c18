// Package template implements BIP32 derivation path templates:
// strings such as "m/0h/[1-9,23]/*" that describe a set of concrete
// derivation paths rather than a single path. A Template is an
// immutable value built by Parse, New or FromPath; every operation
// on it is a side-effect-free query, and every transformation
// produces a new value.
package template

const (
	// HardenedIndexStart is the offset a hardened marker adds to a
	// child index. Indexes at or above it are hardened.
	HardenedIndexStart uint32 = 0x80000000

	// MaxIndexValue is the largest unhardened child index.
	MaxIndexValue = HardenedIndexStart - 1
)

// DefaultHardenedMarker is recorded on templates whose textual form
// carries no hardened marker, so rendering stays total.
const DefaultHardenedMarker = "h"

var acceptedMarkers = []string{"h", "'"}

// Range is a closed interval of child index values. The hardened
// offset is already applied: a Range never straddles
// HardenedIndexStart.
type Range struct {
	Start, End uint32
}

func (r Range) Contains(v uint32) bool {
	return v >= r.Start && v <= r.End
}

func (r Range) IsHardened() bool {
	return r.Start >= HardenedIndexStart
}

// Section holds the acceptable index values for one path depth, as
// strictly increasing, non-overlapping ranges in written order.
type Section []Range

func (s Section) Contains(v uint32) bool {
	for _, r := range s {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// IsHardened reports whether the section's indexes are hardened.
// Ranges within a section are uniformly hardened or unhardened.
func (s Section) IsHardened() bool {
	return len(s) > 0 && s[0].IsHardened()
}

// Template is an immutable derivation path template.
type Template struct {
	sections []Section
	partial  bool
	marker   string
}

// New constructs a template directly from sections, running the
// same semantic checks parsing performs: range ordering and
// intersection, uniform hardening per range, and no hardened
// section after an unhardened one. An empty marker selects
// DefaultHardenedMarker. The sections are copied.
func New(sections []Section, partial bool, marker string) (*Template, error) {
	if len(sections) == 0 {
		return nil, ErrEmptyTemplate
	}
	if err := checkMarker(&marker); err != nil {
		return nil, err
	}
	secs := make([]Section, len(sections))
	gotUnhardened := false
	for i, s := range sections {
		if len(s) == 0 {
			return nil, ErrEmptySection
		}
		sec := make(Section, len(s))
		for j, r := range s {
			if r.Start > r.End {
				return nil, ErrRangeOrder
			}
			if j > 0 && sec[j-1].End >= r.Start {
				return nil, ErrRangesIntersect
			}
			if r.IsHardened() {
				if gotUnhardened {
					return nil, ErrHardenedAfterUnhardened
				}
			} else {
				if r.End >= HardenedIndexStart {
					return nil, ErrInconsistentRange
				}
				gotUnhardened = true
			}
			sec[j] = r
		}
		secs[i] = sec
	}
	return &Template{sections: secs, partial: partial, marker: marker}, nil
}

// FromPath builds the template matching exactly path: one singleton
// section per index. The hardened status of each index is carried
// by the value itself, so no ordering policy applies here and the
// conversion inverts ToPath for any index sequence.
func FromPath(path []uint32, partial bool, marker string) (*Template, error) {
	if len(path) == 0 {
		return nil, ErrEmptyTemplate
	}
	if err := checkMarker(&marker); err != nil {
		return nil, err
	}
	secs := make([]Section, len(path))
	for i, v := range path {
		secs[i] = Section{{Start: v, End: v}}
	}
	return &Template{sections: secs, partial: partial, marker: marker}, nil
}

func checkMarker(m *string) error {
	if *m == "" {
		*m = DefaultHardenedMarker
		return nil
	}
	if !markerAccepted(*m) {
		return ErrUnknownMarker
	}
	return nil
}

func markerAccepted(m string) bool {
	for _, a := range acceptedMarkers {
		if m == a {
			return true
		}
	}
	return false
}

// Depth is the number of path segments the template covers.
func (t *Template) Depth() int {
	return len(t.sections)
}

// IsPartial reports whether the template lacks the "m/" root prefix
// and is meant to be composed beneath an existing path.
func (t *Template) IsPartial() bool {
	return t.partial
}

// HardenedMarker is the marker string used when rendering hardened
// sections.
func (t *Template) HardenedMarker() string {
	return t.marker
}

// Sections returns a copy of the template's sections.
func (t *Template) Sections() []Section {
	secs := make([]Section, len(t.sections))
	for i, s := range t.sections {
		secs[i] = append(Section(nil), s...)
	}
	return secs
}

// WithHardenedMarker derives a template that renders hardened
// sections with marker. The receiver is unchanged.
func (t *Template) WithHardenedMarker(marker string) (*Template, error) {
	if err := checkMarker(&marker); err != nil {
		return nil, err
	}
	return &Template{sections: t.sections, partial: t.partial, marker: marker}, nil
}

// WithPartial derives a template with the given partial flag. The
// receiver is unchanged.
func (t *Template) WithPartial(partial bool) *Template {
	return &Template{sections: t.sections, partial: partial, marker: t.marker}
}

// Match reports whether path is one of the concrete paths the
// template denotes. A path of a different depth never matches.
func (t *Template) Match(path []uint32) bool {
	if len(path) != len(t.sections) {
		return false
	}
	for i, s := range t.sections {
		if !s.Contains(path[i]) {
			return false
		}
	}
	return true
}

// ToPath returns the single concrete path the template denotes.
// The second result is false when the template is ambiguous, that
// is, when any section has more than one range or a range wider
// than one index.
func (t *Template) ToPath() ([]uint32, bool) {
	path := make([]uint32, len(t.sections))
	for i, s := range t.sections {
		if len(s) != 1 || s[0].Start != s[0].End {
			return nil, false
		}
		path[i] = s[0].Start
	}
	return path, true
}

// Equal reports whether two templates have the same sections and
// partial flag. Templates with different hardened markers can still
// be equal.
func (t *Template) Equal(o *Template) bool {
	if o == nil || t.partial != o.partial || len(t.sections) != len(o.sections) {
		return false
	}
	for i := range t.sections {
		a, b := t.sections[i], o.sections[i]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}
