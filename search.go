package gridkit

import (
	sq "github.com/Masterminds/squirrel"
)

// Projection returns the full SELECT list: table.* followed by every
// registered expression AS its alias, in insertion order. Repeated calls
// without intervening registration return identical output.
func (b *Builder) Projection() []string {
	out := make([]string, 0, len(b.order)+1)
	out = append(out, b.table+".*")
	for _, alias := range b.order {
		out = append(out, b.columns[alias].Expression+" AS "+alias)
	}
	return out
}

// Select returns the base data query: the projection over the table, with
// the placeholder format the active dialect expects. Filters, search,
// ordering and paging are layered on by the caller.
func (b *Builder) Select() sq.SelectBuilder {
	cols := b.Projection()
	for i, col := range cols {
		cols[i] = b.escapeExpr(col)
	}
	return sq.Select(cols...).
		From(b.table).
		PlaceholderFormat(b.placeholderFormat())
}

// CountSelect returns a COUNT(*) query over the table, for row counts that
// share the data query's filters.
func (b *Builder) CountSelect() sq.SelectBuilder {
	return sq.Select("COUNT(*)").
		From(b.table).
		PlaceholderFormat(b.placeholderFormat())
}

// ApplySearch adds the global-search predicate: one OR group of
// case-insensitive pattern matches over every searchable computed
// expression and every listed base column, each branch binding the
// identical %term% value. An empty term returns qb unchanged. The group is
// ANDed with any conditions already on qb, so filters constrain the row set
// and search narrows it further.
func (b *Builder) ApplySearch(qb sq.SelectBuilder, term string, baseColumns []string) sq.SelectBuilder {
	if term == "" {
		return qb
	}
	bound := "%" + term + "%"

	var or sq.Or
	for _, alias := range b.order {
		col := b.columns[alias]
		if !col.Searchable {
			continue
		}
		or = append(or, sq.Expr(b.grammar.Like(b.escapeExpr(col.Expression), "?"), bound))
	}
	for _, column := range baseColumns {
		or = append(or, sq.Expr(b.grammar.Like(b.ref(column), "?"), bound))
	}

	if len(or) == 0 {
		return qb
	}
	return qb.Where(or)
}

// ApplyOrder adds an ORDER BY clause. A registered alias orders by its
// computed expression (SELECT aliases are not visible in ORDER BY on every
// dialect); a name listed in baseColumns orders by the table-qualified
// column. The order column is user input, so anything else adds no clause
// rather than reaching the SQL text.
func (b *Builder) ApplyOrder(qb sq.SelectBuilder, column string, desc bool, baseColumns []string) sq.SelectBuilder {
	if column == "" {
		return qb
	}
	var expr string
	if col, ok := b.columns[column]; ok {
		expr = b.escapeExpr(col.Expression)
	} else {
		for _, base := range baseColumns {
			if base == column {
				expr = b.ref(column)
				break
			}
		}
	}
	if expr == "" {
		return qb
	}
	dir := " ASC"
	if desc {
		dir = " DESC"
	}
	return qb.OrderBy(expr + dir)
}
