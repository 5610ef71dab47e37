package runner

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/gridkit/gridkit"
)

func gridRequest(t *testing.T) Request {
	t.Helper()
	b, err := gridkit.New("mysql", "users")
	if err != nil {
		t.Fatal(err)
	}
	b.AddAlias("role_name", "roles.name")

	filters := gridkit.Filters{"status": "active"}
	apply := func(qb sq.SelectBuilder) sq.SelectBuilder {
		qb = gridkit.ApplyExact(qb, "users", filters, "status")
		return b.ApplySearch(qb, "ann", []string{"email"})
	}

	return Request{
		Draw:     7,
		Rows:     apply(b.Select()).Limit(10),
		Total:    b.CountSelect(),
		Filtered: apply(b.CountSelect()),
	}
}

func TestDBRunnerRun(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT COUNT(*) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(42))
	mock.ExpectQuery("SELECT COUNT(*) FROM users WHERE users.status = ? AND (roles.name LIKE ? OR users.email LIKE ?)").
		WithArgs("active", "%ann%", "%ann%").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT users.*, roles.name AS role_name FROM users WHERE users.status = ? AND (roles.name LIKE ? OR users.email LIKE ?) LIMIT 10").
		WithArgs("active", "%ann%", "%ann%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role_name"}).
			AddRow(3, "Ann", "admin"))

	resp, err := NewDB(db, nil).Run(context.Background(), gridRequest(t))
	if err != nil {
		t.Fatal(err)
	}

	if resp.Draw != 7 {
		t.Errorf("Draw = %d, want 7", resp.Draw)
	}
	if resp.RecordsTotal != 42 || resp.RecordsFiltered != 1 {
		t.Errorf("counts = %d/%d, want 42/1", resp.RecordsTotal, resp.RecordsFiltered)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(resp.Data))
	}
	row := resp.Data[0]
	if row["name"] != "Ann" || row["role_name"] != "admin" {
		t.Errorf("row = %v", row)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDBRunnerEmptyPage(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	b, err := gridkit.New("mysql", "users")
	if err != nil {
		t.Fatal(err)
	}

	mock.ExpectQuery("SELECT COUNT(*) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT(*) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT users.* FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := NewDB(db, nil).Run(context.Background(), Request{
		Rows:     b.Select(),
		Total:    b.CountSelect(),
		Filtered: b.CountSelect(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("Data must be an empty slice, got %#v", resp.Data)
	}
}
