package grammar

import (
	"fmt"
	"strings"
)

// MySQL is the native dialect: the canonical date-format language is MySQL's
// own, so DateFormat embeds the format string untranslated.
type MySQL struct{}

func (MySQL) DriverName() string { return "mysql" }

func (MySQL) DateFormat(column, format string) string {
	return fmt.Sprintf("(DATE_FORMAT(%s, %s))", column, QuoteLit(format))
}

func (MySQL) Conditional(condition, whenTrue, whenFalse string) string {
	return fmt.Sprintf("IF(%s, %s, %s)", condition, whenTrue, whenFalse)
}

func (MySQL) IfNull(expr, fallback string) string {
	return fmt.Sprintf("IFNULL(%s, %s)", expr, fallback)
}

func (MySQL) Concat(parts ...string) string {
	return fmt.Sprintf("CONCAT(%s)", strings.Join(parts, ", "))
}

// Like relies on the default collation being case-insensitive, which holds
// for MySQL's standard *_ci collations.
func (MySQL) Like(expr, placeholder string) string {
	return fmt.Sprintf("%s LIKE %s", expr, placeholder)
}
