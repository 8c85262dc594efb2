package connectors

import (
	"awesome_web/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockPool(t *testing.T, d Dialect) (*Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPool(db, d, nil), mock
}

func TestSelectRebindsAndConvertsRows(t *testing.T) {
	pool, mock := newMockPool(t, PostgresDialect{})

	rows := sqlmock.NewRows([]string{"id", "name", "admin"}).
		AddRow("0015", []byte("Bob"), false)
	mock.ExpectQuery(`select "id", "name", "admin" from "users" where "id"=$1`).
		WithArgs("0015").
		WillReturnRows(rows)

	rs, err := pool.Select(context.Background(),
		"select `id`, `name`, `admin` from `users` where `id`=?", []interface{}{"0015"}, 0)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rs))
	}
	if name, ok := rs[0]["name"].(string); !ok || name != "Bob" {
		t.Errorf("[]byte must be converted to string, got %#v", rs[0]["name"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSelectHonoursSize(t *testing.T) {
	pool, mock := newMockPool(t, MariaDBDialect{})

	rows := sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b").AddRow("c")
	mock.ExpectQuery("select `id` from `users`").WillReturnRows(rows)

	rs, err := pool.Select(context.Background(), "select `id` from `users`", nil, 2)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rs))
	}
	if rs[0]["id"] != "a" || rs[1]["id"] != "b" {
		t.Errorf("unexpected rows: %v", rs)
	}
}

func TestSelectEmptyReturnsNonNil(t *testing.T) {
	pool, mock := newMockPool(t, MariaDBDialect{})
	mock.ExpectQuery("select `id` from `users`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rs, err := pool.Select(context.Background(), "select `id` from `users`", nil, 0)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if rs == nil || len(rs) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", rs)
	}
}

func TestExecuteReturnsAffectedRows(t *testing.T) {
	pool, mock := newMockPool(t, OracleDialect{})

	mock.ExpectExec("delete from users where id=:1").
		WithArgs("0015").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := pool.Execute(context.Background(), "delete from `users` where `id`=?", []interface{}{"0015"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if n != 1 {
		t.Errorf("affected = %d, want 1", n)
	}
}

func TestExecutePropagatesDriverError(t *testing.T) {
	pool, mock := newMockPool(t, MariaDBDialect{})
	errDup := errors.New("Error 1062: Duplicate entry")

	mock.ExpectExec("insert into `users` (`name`, `id`) values (?, ?)").
		WillReturnError(errDup)

	_, err := pool.Execute(context.Background(),
		"insert into `users` (`name`, `id`) values (?, ?)", []interface{}{"Bob", "1"})
	if !errors.Is(err, errDup) {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestCreateTableMariaDB(t *testing.T) {
	pool, mock := newMockPool(t, MariaDBDialect{})

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `users` (`id` varchar(50) NOT NULL, " +
		"`name` varchar(50), PRIMARY KEY (`id`), INDEX idx_name (`name`)) ENGINE=InnoDB").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := pool.CreateTable(context.Background(), &domain.TableSchema{
		Table: "users",
		Columns: []domain.ColumnInfo{
			{Name: "id", DataType: "varchar(50)"},
			{Name: "name", DataType: "varchar(50)", IsNullable: true},
		},
		PrimaryKey: "id",
		Indexes:    []string{"name"},
	})
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLimitDelegatesToDialect(t *testing.T) {
	pool, _ := newMockPool(t, PostgresDialect{})
	if got := pool.Limit(true); got != "offset ? limit ?" {
		t.Errorf("Limit(true) = %q", got)
	}
}
