package placeholder

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/certgen/internal/randtoken"
	"github.com/specialistvlad/certgen/internal/roster"
)

// Entry binds a literal template token to its Rule.
type Entry struct {
	Token string
	Rule  Rule
}

// Table is an ordered set of placeholder entries.
type Table []Entry

// DefaultTable is the placeholder set understood by certificate templates.
var DefaultTable = Table{
	{"{{issued_to}}", FixedField("name")},
	{"{{issuer}}", FixedField("issuer")},
	{"{{issuer_orcid}}", FixedField("issuer_orcid")},
	{"{{event}}", FixedField("event_name")},
	{"{{event_description}}", FixedField("event_description")},
	{"{{unique_id}}", FixedField("certificate_id")},
	{"{{id_link}}", FixedField("certificate_link")},
	{"{{event_date}}", FixedField("date")},
	{"{{issued_on}}", FixedField("certificate_date")},
	{"{{issued_at}}", FixedField("certificate_location")},
	{"{{rand.color}}", RandomDraw(GenColor)},
	{"{{rand.opacity}}", RandomDraw(GenOpacity)},
	{"{{rand.jiggle}}", RandomDraw(GenJiggle)},
}

// MissingFieldError is returned when a row lacks a required column. Token
// names the placeholder bound to it, or is empty when the column is needed
// for something other than substitution.
type MissingFieldError struct {
	Token  string
	Column string
}

func (e *MissingFieldError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("row is missing required column %q", e.Column)
	}
	return fmt.Sprintf("row is missing column %q required by placeholder %s", e.Column, e.Token)
}

// Tokens returns the table's tokens in order.
func (t Table) Tokens() []string {
	out := make([]string, 0, len(t))
	for _, e := range t {
		out = append(out, e.Token)
	}
	return out
}

// Columns returns the roster columns the table's fixed rules require.
func (t Table) Columns() []string {
	var out []string
	for _, e := range t {
		if e.Rule.Kind == KindFixedField {
			out = append(out, e.Rule.Column)
		}
	}
	return out
}

// Substitute produces the document text for row from template using
// DefaultTable.
func Substitute(template string, row roster.Row, src randtoken.Source) (string, error) {
	return DefaultTable.Substitute(template, row, src)
}

// Substitute replaces every token of t in template. Fixed rules run first,
// then random rules, so a random value can never be mistaken for a token.
func (t Table) Substitute(template string, row roster.Row, src randtoken.Source) (string, error) {
	content := template

	for _, e := range t {
		if e.Rule.Kind != KindFixedField {
			continue
		}
		value, ok := row.Lookup(e.Rule.Column)
		if !ok {
			return "", &MissingFieldError{Token: e.Token, Column: e.Rule.Column}
		}
		content = strings.ReplaceAll(content, e.Token, value)
	}

	for _, e := range t {
		if e.Rule.Kind != KindRandomDraw {
			continue
		}
		draw, err := drawFunc(e.Rule.Generator, src)
		if err != nil {
			return "", fmt.Errorf("placeholder %s: %w", e.Token, err)
		}
		content = replaceEach(content, e.Token, draw)
	}

	return content, nil
}

func drawFunc(gen Generator, src randtoken.Source) (func() string, error) {
	switch gen {
	case GenColor:
		return src.Color, nil
	case GenOpacity:
		return src.Opacity, nil
	case GenJiggle:
		return src.Jiggle, nil
	default:
		return nil, fmt.Errorf("unknown generator %s", gen)
	}
}

// replaceEach replaces the occurrences of token left to right, calling next
// once per occurrence. Replacement text is never rescanned.
func replaceEach(content, token string, next func() string) string {
	if token == "" || !strings.Contains(content, token) {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	rest := content
	for {
		i := strings.Index(rest, token)
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(next())
		rest = rest[i+len(token):]
	}
	b.WriteString(rest)
	return b.String()
}
