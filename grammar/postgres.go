package grammar

import (
	"fmt"
	"strings"
)

// toChar maps each canonical date-format token to its TO_CHAR counterpart.
// FM prefixes suppress the blank/zero padding TO_CHAR adds by default, so
// %e and the name specifiers come out the way DATE_FORMAT renders them.
var toChar = map[string]string{
	"%Y": "YYYY",
	"%y": "YY",
	"%m": "MM",
	"%d": "DD",
	"%e": "FMDD",
	"%H": "HH24",
	"%h": "HH12",
	"%i": "MI",
	"%s": "SS",
	"%M": "FMMonth",
	"%b": "Mon",
	"%W": "FMDay",
	"%a": "Dy",
	"%p": "AM",
	"%T": "HH24:MI:SS",
	"%r": "HH12:MI:SS AM",
	"%%": "%",
}

var toCharTranslator = NewTranslator(toChar)

// Postgres renders the canonical operations in PostgreSQL syntax. Date
// formats are translated from the canonical language into TO_CHAR patterns.
type Postgres struct{}

func (Postgres) DriverName() string { return "postgres" }

func (Postgres) DateFormat(column, format string) string {
	return fmt.Sprintf("(TO_CHAR(%s, %s))", column, QuoteLit(toCharTranslator.Translate(format)))
}

func (Postgres) Conditional(condition, whenTrue, whenFalse string) string {
	return fmt.Sprintf("CASE WHEN %s THEN %s ELSE %s END", condition, whenTrue, whenFalse)
}

func (Postgres) IfNull(expr, fallback string) string {
	return fmt.Sprintf("COALESCE(%s, %s)", expr, fallback)
}

// Concat uses the || operator rather than CONCAT(): Postgres CONCAT skips
// NULL arguments, while || propagates them, matching MySQL CONCAT so that
// IfNull fallbacks over a concatenation fire on both dialects.
func (Postgres) Concat(parts ...string) string {
	return fmt.Sprintf("(%s)", strings.Join(parts, " || "))
}

// Like casts the left side to text so computed and non-text columns can be
// matched, and uses ILIKE for case-insensitivity.
func (Postgres) Like(expr, placeholder string) string {
	return fmt.Sprintf("CAST(%s AS TEXT) ILIKE %s", expr, placeholder)
}
