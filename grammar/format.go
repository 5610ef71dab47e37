package grammar

import "sort"

// The canonical date-format language is MySQL's DATE_FORMAT specifier
// alphabet: two-character %-prefixed tokens interleaved with literal text.
//
//	%Y  4-digit year          %M  full month name
//	%y  2-digit year          %b  abbreviated month name
//	%m  month number          %W  full weekday name
//	%d  day number            %a  abbreviated weekday name
//	%e  day, no leading zero  %p  AM/PM marker
//	%H  24-hour hour          %T  24-hour time (HH:MM:SS)
//	%h  12-hour hour          %r  12-hour time (HH:MM:SS AM)
//	%i  minute                %%  literal percent
//	%s  second
//
// Dialects whose native format function speaks a different language build a
// Translator over a token table mapping each canonical token to its native
// counterpart.

// Translator rewrites canonical date-format strings into a dialect's native
// specifier language. It is immutable after construction and safe for
// concurrent use.
type Translator struct {
	tokens  []string
	mapping map[string]string
}

// NewTranslator builds a Translator from a canonical-token to native-token
// table. Tokens are matched longest-first so that a token sharing a prefix
// with a longer one (such as %% against any %X specifier) can never be
// consumed as a spurious substring of the other.
func NewTranslator(mapping map[string]string) *Translator {
	tokens := make([]string, 0, len(mapping))
	for tok := range mapping {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	m := make(map[string]string, len(mapping))
	for tok, native := range mapping {
		m[tok] = native
	}
	return &Translator{tokens: tokens, mapping: m}
}

// Translate rewrites format into the native specifier language. The input is
// scanned left to right; at each position the longest matching canonical
// token wins and emits its native form. Unrecognized tokens and plain
// characters pass through unchanged — a typo'd specifier becomes literal
// output, never an error.
func (t *Translator) Translate(format string) string {
	var out []byte
	for i := 0; i < len(format); {
		matched := false
		for _, tok := range t.tokens {
			if len(format)-i >= len(tok) && format[i:i+len(tok)] == tok {
				out = append(out, t.mapping[tok]...)
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, format[i])
			i++
		}
	}
	return string(out)
}
