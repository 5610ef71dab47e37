package runner

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/gridkit/gridkit"
)

// TestDBRunnerMySQLIntegration exercises the full pipeline against a real
// MySQL server. Set GRIDKIT_MYSQL_DSN to run it, e.g.
//
//	GRIDKIT_MYSQL_DSN="root:root@tcp(localhost:3306)/test" go test ./runner
func TestDBRunnerMySQLIntegration(t *testing.T) {
	dsn := os.Getenv("GRIDKIT_MYSQL_DSN")
	if dsn == "" {
		t.Skip("GRIDKIT_MYSQL_DSN not set")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	// Temporary tables are per-connection.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatal(err)
	}

	stmts := []string{
		`CREATE TEMPORARY TABLE gridkit_members (
			id INT PRIMARY KEY,
			name VARCHAR(64) NOT NULL,
			active TINYINT NOT NULL,
			joined_at DATE NOT NULL
		)`,
		`INSERT INTO gridkit_members VALUES
			(1, 'Ann Smith', 1, '2024-02-01'),
			(2, 'Bob Jones', 0, '2024-03-05'),
			(3, 'Cat Smith', 1, '2024-04-09')`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatal(err)
		}
	}

	b, err := gridkit.New("mysql", "gridkit_members")
	if err != nil {
		t.Fatal(err)
	}
	b.AddBool("active", "Active", "Inactive").
		AddDate("joined_at", "%d/%m/%Y", "joined")

	qb := b.ApplySearch(b.Select(), "smith", []string{"name"})
	filtered := b.ApplySearch(b.CountSelect(), "smith", []string{"name"})

	resp, err := NewDB(db, nil).Run(ctx, Request{
		Draw:     1,
		Rows:     b.ApplyOrder(qb, "id", false, []string{"id"}),
		Total:    b.CountSelect(),
		Filtered: filtered,
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.RecordsTotal != 3 {
		t.Errorf("RecordsTotal = %d, want 3", resp.RecordsTotal)
	}
	if resp.RecordsFiltered != 2 {
		t.Errorf("RecordsFiltered = %d, want 2", resp.RecordsFiltered)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(resp.Data))
	}
	first := resp.Data[0]
	if first["active_str"] != "Active" || first["active_class"] != "success" {
		t.Errorf("bool columns = %v/%v", first["active_str"], first["active_class"])
	}
	if first["joined"] != "01/02/2024" {
		t.Errorf("joined = %v", first["joined"])
	}
}
