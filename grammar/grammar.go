// Package grammar generates dialect-specific SQL fragments for the small set
// of expression operations the grid builder needs: date formatting, ternary
// conditionals, null coalescing, string concatenation and case-insensitive
// pattern matching.
//
// A Grammar is stateless and safe to share between builders. Grammars work
// purely on strings: column references and already-quoted literals go in,
// SQL fragments come out. Quoting literal values is the caller's
// responsibility; user-supplied runtime values must never reach a grammar as
// text — they belong in bound parameters on the query side.
package grammar

// Grammar is the capability contract a SQL dialect must implement.
// All methods are pure and deterministic on their inputs.
type Grammar interface {
	// DriverName returns the stable identifier used as the registry key.
	DriverName() string

	// DateFormat returns a parenthesized expression rendering column as text
	// according to format, which uses the canonical specifier alphabet
	// (MySQL DATE_FORMAT syntax, see Translator).
	DateFormat(column, format string) string

	// Conditional returns a ternary expression: whenTrue if condition holds
	// for the row, whenFalse otherwise.
	Conditional(condition, whenTrue, whenFalse string) string

	// IfNull returns expr when it is non-null, fallback otherwise.
	IfNull(expr, fallback string) string

	// Concat concatenates two or more parts. The result is NULL when any
	// part is NULL in every dialect (MySQL CONCAT semantics), so IfNull
	// fallbacks over a concatenation behave identically everywhere.
	Concat(parts ...string) string

	// Like returns a case-insensitive pattern-match predicate comparing expr
	// against a single bound placeholder token.
	Like(expr, placeholder string) string
}

// QuoteLit wraps s in single quotes for use as a SQL string literal.
// Intended for trusted, developer-supplied text (labels, URL prefixes);
// never pass user input through it.
func QuoteLit(s string) string { return "'" + s + "'" }
