package runner

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DBRunner executes grid requests over database/sql, for dialects served by
// a stdlib driver (MySQL in particular).
type DBRunner struct {
	db  *sql.DB
	log *slog.Logger
}

// NewDB returns a DBRunner. A nil logger falls back to slog.Default.
func NewDB(db *sql.DB, log *slog.Logger) *DBRunner {
	if log == nil {
		log = slog.Default()
	}
	return &DBRunner{db: db, log: log}
}

// Run executes the three queries of req concurrently and assembles the
// envelope.
func (r *DBRunner) Run(ctx context.Context, req Request) (*Response, error) {
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
		rows, err := r.db.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("rows query: %w", err)
		}
		data, err := scanSQLRows(rows)
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

func (r *DBRunner) count(ctx context.Context, qb sq.SelectBuilder, dest *int64) error {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("build count query: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(dest); err != nil {
		return fmt.Errorf("count query: %w", err)
	}
	return nil
}

// scanSQLRows hydrates every row into a map keyed by result column name.
// []byte cells become strings: MySQL's driver returns text columns as raw
// bytes, which would JSON-encode as base64.
func scanSQLRows(rows *sql.Rows) ([]map[string]any, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		m := make(map[string]any, len(cols))
		for i, name := range cols {
			if b, ok := vals[i].([]byte); ok {
				m[name] = string(b)
			} else {
				m[name] = vals[i]
			}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
