package token

import "fmt"

type Kind int

const (
	KindPrefix Kind = iota
	KindNumber
	KindWildcard
	KindHardened
	KindSlash
	KindListOpen
	KindListClose
	KindComma
	KindDash
)

func (k Kind) String() string {
	return map[Kind]string{
		KindPrefix:    "KindPrefix",
		KindNumber:    "KindNumber",
		KindWildcard:  "KindWildcard",
		KindHardened:  "KindHardened",
		KindSlash:     "KindSlash",
		KindListOpen:  "KindListOpen",
		KindListClose: "KindListClose",
		KindComma:     "KindComma",
		KindDash:      "KindDash",
	}[k]
}

// Token is one validated syntactic unit of a template string.
// Pos is the zero-based byte offset of the token in the input.
// Value holds the numeric value for KindNumber tokens and the
// marker character for KindHardened tokens.
type Token struct {
	Kind  Kind
	Pos   int
	Value uint32
}

func (t *Token) String() string {
	switch t.Kind {
	case KindNumber:
		return fmt.Sprintf("%s(%d) at %d", t.Kind, t.Value, t.Pos)
	case KindHardened:
		return fmt.Sprintf("%s(%c) at %d", t.Kind, byte(t.Value), t.Pos)
	default:
		return fmt.Sprintf("%s at %d", t.Kind, t.Pos)
	}
}
