// Package gridkit builds dialect-abstracted SQL for server-side tabular data
// views: computed SELECT projections, structured filters and a global-search
// predicate, generated identically across SQL dialects through the grammar
// package and composed onto a squirrel SelectBuilder.
//
// A Builder is cheap, owned by a single request and never shared: construct,
// register columns, apply filters, assemble, discard.
package gridkit

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/gridkit/gridkit/grammar"
)

// Column is one computed projection entry: a SQL expression under an alias,
// optionally included in global search.
type Column struct {
	Alias      string
	Expression string
	Searchable bool
}

// Builder tracks computed columns for one table and assembles projections
// and search predicates through a resolved dialect grammar.
type Builder struct {
	table   string
	grammar grammar.Grammar
	order   []string
	columns map[string]Column
}

// New resolves the grammar for driver and returns a builder over table.
// An unregistered driver fails immediately with
// *grammar.UnsupportedDialectError; no builder state is produced.
func New(driver, table string) (*Builder, error) {
	g, err := grammar.Resolve(driver)
	if err != nil {
		return nil, err
	}
	return NewWithGrammar(g, table), nil
}

// NewWithGrammar returns a builder over table using an already resolved
// grammar. Useful when one grammar instance is shared across many builders.
func NewWithGrammar(g grammar.Grammar, table string) *Builder {
	return &Builder{
		table:   table,
		grammar: g,
		columns: make(map[string]Column),
	}
}

// AddRaw registers expression under alias. It is the primitive every other
// Add method goes through. Re-registering an alias overwrites the previous
// entry and keeps its original projection position (last write wins).
// A literal question mark inside expression stays literal; it is never
// treated as a bind placeholder.
func (b *Builder) AddRaw(alias, expression string, searchable bool) *Builder {
	if _, exists := b.columns[alias]; !exists {
		b.order = append(b.order, alias)
	}
	b.columns[alias] = Column{Alias: alias, Expression: expression, Searchable: searchable}
	return b
}

// AddDate registers a date-formatted rendering of table.column under alias.
// format uses the canonical specifier language (see grammar.Translator).
func (b *Builder) AddDate(column, format, alias string) *Builder {
	return b.AddRaw(alias, b.grammar.DateFormat(b.ref(column), format), true)
}

// AddBool registers two entries for a 0/1 flag column: {column}_str holding
// trueText/falseText and {column}_class holding the CSS tags success/danger.
func (b *Builder) AddBool(column, trueText, falseText string) *Builder {
	return b.AddBoolClass(column, trueText, falseText, "success", "danger")
}

// AddBoolClass is AddBool with explicit CSS tags for the _class entry.
func (b *Builder) AddBoolClass(column, trueText, falseText, trueClass, falseClass string) *Builder {
	cond := b.ref(column) + " = 1"
	b.AddRaw(column+"_str",
		b.grammar.Conditional(cond, grammar.QuoteLit(trueText), grammar.QuoteLit(falseText)), true)
	b.AddRaw(column+"_class",
		b.grammar.Conditional(cond, grammar.QuoteLit(trueClass), grammar.QuoteLit(falseClass)), true)
	return b
}

// AddFile registers a URL built by prefixing baseURL onto column, falling
// back to fallbackURL when column is NULL. column may be any column
// reference, including one from a joined table.
func (b *Builder) AddFile(alias, baseURL, column, fallbackURL string) *Builder {
	expr := b.grammar.IfNull(
		b.grammar.Concat(grammar.QuoteLit(baseURL), column),
		grammar.QuoteLit(fallbackURL))
	return b.AddRaw(alias, expr, true)
}

// AddConcat registers prefix concatenated onto column, with no null
// fallback.
func (b *Builder) AddConcat(alias, prefix, column string) *Builder {
	return b.AddRaw(alias, b.grammar.Concat(grammar.QuoteLit(prefix), column), true)
}

// AddAlias registers a passthrough expression, typically a joined-table
// column reference. Identical to AddRaw with searchable true; kept as a
// separate name because it states intent at the call site.
func (b *Builder) AddAlias(alias, expression string) *Builder {
	return b.AddRaw(alias, expression, true)
}

// Columns returns the registered entries in projection (insertion) order.
func (b *Builder) Columns() []Column {
	out := make([]Column, 0, len(b.order))
	for _, alias := range b.order {
		out = append(out, b.columns[alias])
	}
	return out
}

// SearchableAliases returns the aliases flagged searchable, in projection
// order.
func (b *Builder) SearchableAliases() []string {
	var out []string
	for _, alias := range b.order {
		if b.columns[alias].Searchable {
			out = append(out, alias)
		}
	}
	return out
}

// Table returns the base table name.
func (b *Builder) Table() string { return b.table }

// Grammar returns the resolved dialect grammar.
func (b *Builder) Grammar() grammar.Grammar { return b.grammar }

// ref qualifies a base-table column name.
func (b *Builder) ref(column string) string { return b.table + "." + column }

// placeholderFormat returns the squirrel placeholder style the active
// dialect expects.
func (b *Builder) placeholderFormat() sq.PlaceholderFormat {
	if b.grammar.DriverName() == "postgres" {
		return sq.Dollar
	}
	return sq.Question
}

// escapeExpr doubles literal question marks in a registered expression when
// the dialect rewrites positional placeholders: the rewrite is not
// quote-aware, so an unescaped ? inside a quoted literal would be numbered
// as a parameter and shift every later binding. squirrel turns ?? back into
// a single literal ?.
func (b *Builder) escapeExpr(expr string) string {
	if b.placeholderFormat() == sq.Dollar {
		return strings.ReplaceAll(expr, "?", "??")
	}
	return expr
}
