package gridkit

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var reservedParams = map[string]bool{
	"draw":   true,
	"search": true,
	"order":  true,
	"limit":  true,
	"offset": true,
}

// Params carries one grid request: paging, ordering, the global-search term
// and the structured filter map. Every non-reserved query parameter becomes
// a filter value.
type Params struct {
	Draw    int
	Search  string
	Order   string
	Desc    bool
	Limit   uint64
	Offset  uint64
	Filters Filters
}

// ParseParams reads grid parameters from a URL query.
//
// Reserved keys: draw, search, order (as "column" or "column.desc"), limit
// (defaulted and capped) and offset. Everything else lands in Filters.
func ParseParams(q url.Values) (Params, error) {
	p := Params{
		Limit:   DefaultLimit,
		Filters: make(Filters),
	}

	if d := q.Get("draw"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 {
			return Params{}, fmt.Errorf("invalid draw %q", d)
		}
		p.Draw = n
	}

	p.Search = q.Get("search")

	// ?order=column.desc
	if ord := q.Get("order"); ord != "" {
		parts := strings.SplitN(ord, ".", 2)
		p.Order = parts[0]
		if len(parts) == 2 && strings.EqualFold(parts[1], "desc") {
			p.Desc = true
		}
	}

	if lim := q.Get("limit"); lim != "" {
		n, err := strconv.ParseUint(lim, 10, 64)
		if err != nil || n < 1 {
			return Params{}, fmt.Errorf("invalid limit %q", lim)
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		p.Limit = n
	}

	if off := q.Get("offset"); off != "" {
		n, err := strconv.ParseUint(off, 10, 64)
		if err != nil {
			return Params{}, fmt.Errorf("invalid offset %q", off)
		}
		p.Offset = n
	}

	for key, values := range q {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		p.Filters[key] = values[0]
	}

	return p, nil
}
