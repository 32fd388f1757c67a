// Package placeholder turns a certificate template into the source text for
// one roster row.
//
// A Table is an ordered list of tokens, each bound to a Rule. A FixedField
// rule copies a roster column into every occurrence of its token. A
// RandomDraw rule asks a randtoken.Source for a fresh value per occurrence,
// so two {{rand.color}} tokens in one template get two independent draws.
//
// Fixed rules are applied before random ones, each in table order, and a
// token's occurrences are replaced left to right. Tokens that are not in the
// table are left untouched.
package placeholder
