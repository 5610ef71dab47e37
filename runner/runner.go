// Package runner executes assembled grid queries and produces the paging
// envelope. The row, total-count and filtered-count queries for one page run
// concurrently; results land in a Response ready for JSON serialization.
//
// Runner speaks pgx (PostgreSQL), DBRunner speaks database/sql for dialects
// without a pgx driver, such as MySQL.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// Request carries the three prepared queries for one grid page. The caller
// assembles them (projection, filters, search, ordering, paging); the runner
// only executes.
type Request struct {
	Draw     int
	Rows     sq.SelectBuilder // filtered, searched, ordered, paged data query
	Total    sq.SelectBuilder // unfiltered COUNT(*) over the base table
	Filtered sq.SelectBuilder // COUNT(*) sharing the data query's filters and search
}

// Response is the grid envelope: the echoed draw counter, the unfiltered and
// filtered row counts, and the page of rows keyed by projection alias.
type Response struct {
	Draw            int              `json:"draw"`
	RecordsTotal    int64            `json:"recordsTotal"`
	RecordsFiltered int64            `json:"recordsFiltered"`
	Data            []map[string]any `json:"data"`
}

// Querier is the slice of the pgx API the runner needs. *pgxpool.Pool and
// *pgx.Conn both satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Runner executes grid requests over a pgx connection or pool.
type Runner struct {
	db  Querier
	log *slog.Logger
}

// New returns a Runner. A nil logger falls back to slog.Default.
func New(db Querier, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{db: db, log: log}
}

// Run executes the three queries of req concurrently and assembles the
// envelope. The first failing query cancels the others.
func (r *Runner) Run(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	runID := uuid.NewString()

	resp := &Response{Draw: req.Draw, Data: []map[string]any{}}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.count(ctx, req.Total, &resp.RecordsTotal)
	})
	g.Go(func() error {
		return r.count(ctx, req.Filtered, &resp.RecordsFiltered)
	})
	g.Go(func() error {
		sqlStr, args, err := req.Rows.ToSql()
		if err != nil {
			return fmt.Errorf("build rows query: %w", err)
		}
		rows, err := r.db.Query(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("rows query: %w", err)
		}
		data, err := scanPgxRows(rows)
		if err != nil {
			return err
		}
		if data != nil {
			resp.Data = data
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Debug("grid query",
		"run_id", runID,
		"draw", req.Draw,
		"rows", len(resp.Data),
		"total", resp.RecordsTotal,
		"filtered", resp.RecordsFiltered,
		"duration", time.Since(start))
	return resp, nil
}

func (r *Runner) count(ctx context.Context, qb sq.SelectBuilder, dest *int64) error {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("build count query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(dest); err != nil {
		return fmt.Errorf("count query: %w", err)
	}
	return nil
}

// scanPgxRows hydrates every row into a map keyed by result column name.
func scanPgxRows(rows pgx.Rows) ([]map[string]any, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		m := make(map[string]any, len(fields))
		for i, fd := range fields {
			m[fd.Name] = vals[i]
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
