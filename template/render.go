package template

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the canonical textual form: the deterministic
// inverse of Parse for canonical inputs. The root prefix appears
// iff the template is not partial; a section renders as a single
// number, a wildcard, or a bracketed list, with the template's
// hardened marker appended to hardened sections.
func (t *Template) String() string {
	parts := make([]string, 0, len(t.sections)+1)
	if !t.partial {
		parts = append(parts, "m")
	}
	for _, s := range t.sections {
		parts = append(parts, t.renderSection(s))
	}
	return strings.Join(parts, "/")
}

func (t *Template) renderSection(s Section) string {
	brackets := len(s) > 1
	items := make([]string, len(s))
	for i, r := range s {
		start := r.Start & MaxIndexValue
		end := r.End & MaxIndexValue
		switch {
		case start == end:
			items[i] = strconv.FormatUint(uint64(start), 10)
		case start == 0 && end == MaxIndexValue:
			items[i] = "*"
		default:
			items[i] = fmt.Sprintf("%d-%d", start, end)
			brackets = true
		}
	}
	var b strings.Builder
	if brackets {
		b.WriteByte('[')
	}
	b.WriteString(strings.Join(items, ","))
	if brackets {
		b.WriteByte(']')
	}
	if s.IsHardened() {
		b.WriteString(t.marker)
	}
	return b.String()
}
