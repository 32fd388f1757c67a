package placeholder

import "fmt"

// Kind discriminates the variants of Rule.
type Kind int

const (
	// KindFixedField replaces a token with a roster column.
	KindFixedField Kind = iota + 1
	// KindRandomDraw replaces each occurrence with a fresh random value.
	KindRandomDraw
)

func (k Kind) String() string {
	switch k {
	case KindFixedField:
		return "field"
	case KindRandomDraw:
		return "random"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Generator names one of the randtoken.Source draws.
type Generator int

const (
	GenColor Generator = iota + 1
	GenOpacity
	GenJiggle
)

func (g Generator) String() string {
	switch g {
	case GenColor:
		return "color"
	case GenOpacity:
		return "opacity"
	case GenJiggle:
		return "jiggle"
	default:
		return fmt.Sprintf("Generator(%d)", int(g))
	}
}

// Rule says where the replacement for a token comes from. Only the field
// matching Kind is meaningful; build rules with FixedField or RandomDraw.
type Rule struct {
	Kind      Kind
	Column    string
	Generator Generator
}

// FixedField returns a rule that copies column from the roster row.
func FixedField(column string) Rule {
	return Rule{Kind: KindFixedField, Column: column}
}

// RandomDraw returns a rule that draws a new value from gen per occurrence.
func RandomDraw(gen Generator) Rule {
	return Rule{Kind: KindRandomDraw, Generator: gen}
}

// Describe renders the rule for help output, e.g. "column 'name'".
func (r Rule) Describe() string {
	switch r.Kind {
	case KindFixedField:
		return fmt.Sprintf("column '%s'", r.Column)
	case KindRandomDraw:
		return fmt.Sprintf("random %s", r.Generator)
	default:
		return r.Kind.String()
	}
}
