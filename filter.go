package gridkit

import (
	sq "github.com/Masterminds/squirrel"
)

// Filters is the caller-supplied filter parameter map, treated as untyped
// input and consumed once per query build.
//
// Presence is an explicit three-state check: a key that is absent, holds an
// empty string, or holds boolean false is "no filter requested". Anything
// else — including the string "0" — is a requested filter value.
type Filters map[string]any

// Value returns the filter value for key and whether a filter was requested.
func (f Filters) Value(key string) (any, bool) {
	v, ok := f[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil, false
		}
	case bool:
		if !t {
			return nil, false
		}
	case nil:
		return nil, false
	}
	return v, true
}

// ApplyRange adds inclusive range conditions on table.dbColumn from the
// {column}_dari (lower, >=) and {column}_sampai (upper, <=) filter keys.
// Either, both, or neither may be present; each present bound becomes an
// independent condition, never a merged BETWEEN. An empty dbColumn defaults
// to column.
func ApplyRange(qb sq.SelectBuilder, table string, f Filters, column, dbColumn string) sq.SelectBuilder {
	if dbColumn == "" {
		dbColumn = column
	}
	ref := table + "." + dbColumn
	if v, ok := f.Value(column + "_dari"); ok {
		qb = qb.Where(sq.GtOrEq{ref: v})
	}
	if v, ok := f.Value(column + "_sampai"); ok {
		qb = qb.Where(sq.LtOrEq{ref: v})
	}
	return qb
}

// ApplyExact adds an equality condition on table.column for every listed
// column whose filter value is present. Values are always bound parameters.
func ApplyExact(qb sq.SelectBuilder, table string, f Filters, columns ...string) sq.SelectBuilder {
	for _, column := range columns {
		if v, ok := f.Value(column); ok {
			qb = qb.Where(sq.Eq{table + "." + column: v})
		}
	}
	return qb
}

// ApplyNull adds a null-state condition on table.column driven by the param
// filter key: a value loosely equal to 1 requires the column to be NOT
// NULL, any other requested value requires it to be NULL, and an absent or
// empty key adds no condition.
func ApplyNull(qb sq.SelectBuilder, table string, f Filters, column, param string) sq.SelectBuilder {
	v, ok := f.Value(param)
	if !ok {
		return qb
	}
	ref := table + "." + column
	if looselyOne(v) {
		return qb.Where(sq.NotEq{ref: nil})
	}
	return qb.Where(sq.Eq{ref: nil})
}

// looselyOne reports whether v is the number 1 under loose comparison:
// the integer or float 1, the string "1", or boolean true.
func looselyOne(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "1"
	case int:
		return t == 1
	case int64:
		return t == 1
	case float64:
		return t == 1
	case bool:
		return t
	}
	return false
}
