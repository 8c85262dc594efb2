package orm

import (
	"awesome_web/internal/domain"
	"context"
)

// mockExecutor запоминает запросы и возвращает заранее заданные ответы
type mockExecutor struct {
	queries []string
	args    [][]interface{}
	sizes   []int

	rows     []domain.Record
	affected int64
	err      error
}

func (m *mockExecutor) Select(_ context.Context, query string, args []interface{}, size int) ([]domain.Record, error) {
	m.queries = append(m.queries, query)
	m.args = append(m.args, args)
	m.sizes = append(m.sizes, size)
	if m.err != nil {
		return nil, m.err
	}
	rows := m.rows
	if size > 0 && len(rows) > size {
		rows = rows[:size]
	}
	return rows, nil
}

func (m *mockExecutor) Execute(_ context.Context, query string, args []interface{}) (int64, error) {
	m.queries = append(m.queries, query)
	m.args = append(m.args, args)
	return m.affected, m.err
}

func (m *mockExecutor) lastQuery() string {
	return m.queries[len(m.queries)-1]
}

func (m *mockExecutor) lastArgs() []interface{} {
	return m.args[len(m.args)-1]
}

// limiterExecutor исполнитель с синтаксисом LIMIT как у PostgreSQL
type limiterExecutor struct {
	mockExecutor
}

func (l *limiterExecutor) Limit(pair bool) string {
	if pair {
		return "offset ? limit ?"
	}
	return "limit ?"
}

var testUser = Define("User").
	Table("users").
	Field("id", StringField(PrimaryKey(), DDL("varchar(50)"))).
	Field("email", StringField(DDL("varchar(50)"))).
	Field("admin", BooleanField()).
	Field("age", IntegerField()).
	Field("name", StringField(Column("user_name"))).
	MustBuild()
