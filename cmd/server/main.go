// Command server is a demo grid API: one endpoint serving a server-side
// paginated, filterable, searchable members table over either PostgreSQL
// (pgx) or MySQL (database/sql), selected by GRID_DRIVER.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridkit/gridkit"
	"github.com/gridkit/gridkit/internal/config"
	"github.com/gridkit/gridkit/internal/middleware"
	"github.com/gridkit/gridkit/runner"
)

type gridRunner interface {
	Run(ctx context.Context, req runner.Request) (*runner.Response, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	run, cleanup, err := newRunner(ctx, cfg, log)
	if err != nil {
		log.Error("connect", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /grid/members", membersGrid(cfg.Driver, run, log))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: middleware.Logging(log, middleware.Recovery(log, mux)),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Info("listening", "addr", cfg.Addr(), "driver", cfg.Driver)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}

func newRunner(ctx context.Context, cfg *config.Config, log *slog.Logger) (gridRunner, func(), error) {
	if cfg.Driver == "postgres" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return runner.New(pool, log), pool.Close, nil
	}
	db, err := sql.Open(cfg.Driver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return runner.NewDB(db, log), func() { db.Close() }, nil
}

func membersGrid(driver string, run gridRunner, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := gridkit.ParseParams(r.URL.Query())
		if err != nil {
			runner.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
			return
		}

		b, err := gridkit.New(driver, "members")
		if err != nil {
			runner.WriteError(w, http.StatusInternalServerError, "UNSUPPORTED_DIALECT", err.Error())
			return
		}
		b.AddBool("active", "Active", "Inactive").
			AddDate("joined_at", "%d %M %Y", "joined").
			AddFile("avatar", "https://cdn.example.com/avatars/", "members.photo",
				"https://cdn.example.com/avatars/default.png").
			AddConcat("balance_fmt", "Rp. ", "members.balance")

		baseColumns := []string{"id", "name", "email", "status", "city", "joined_at"}

		apply := func(qb sq.SelectBuilder) sq.SelectBuilder {
			qb = gridkit.ApplyRange(qb, "members", params.Filters, "joined", "joined_at")
			qb = gridkit.ApplyExact(qb, "members", params.Filters, "status", "city")
			qb = gridkit.ApplyNull(qb, "members", params.Filters, "deleted_at", "archived")
			return b.ApplySearch(qb, params.Search, []string{"name", "email"})
		}

		rows := b.ApplyOrder(apply(b.Select()), params.Order, params.Desc, baseColumns).
			Limit(params.Limit).
			Offset(params.Offset)

		resp, err := run.Run(r.Context(), runner.Request{
			Draw:     params.Draw,
			Rows:     rows,
			Total:    b.CountSelect(),
			Filtered: apply(b.CountSelect()),
		})
		if err != nil {
			log.Error("grid query", "err", err)
			runner.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "query failed")
			return
		}
		runner.WriteJSON(w, http.StatusOK, resp)
	}
}
