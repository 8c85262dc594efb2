package orm

import (
	"awesome_web/internal/domain"
	"awesome_web/internal/logger"
	"context"
	"fmt"
	"strings"
)

// Executor исполнитель запросов (connectors.Pool или тестовый двойник).
// Запросы приходят с нейтральным маркером ?
type Executor interface {
	Select(ctx context.Context, query string, args []interface{}, size int) ([]domain.Record, error)
	Execute(ctx context.Context, query string, args []interface{}) (int64, error)
}

// Limiter необязательное расширение Executor для синтаксиса LIMIT конкретной СУБД
type Limiter interface {
	Limit(pair bool) string
}

type DB struct {
	exec Executor
	log  *logger.Log
}

func New(exec Executor, log *logger.Log) *DB {
	if log == nil {
		log = logger.Discard()
	}
	return &DB{exec: exec, log: log}
}

type FindOptions struct {
	Where   string
	Args    []interface{}
	OrderBy string
	// nil, число или пара [offset, count] ([2]int, []int из двух элементов)
	Limit interface{}
}

// Find ищет запись по первичному ключу. Если записи нет, возвращает nil без ошибки
func (db *DB) Find(ctx context.Context, s *Schema, pk interface{}) (*Model, error) {
	query := fmt.Sprintf("%s where %s=?", s.selectSQL, quote(s.column(s.primaryKey)))
	rs, err := db.exec.Select(ctx, query, []interface{}{pk}, 1)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, nil
	}
	return s.fromRow(rs[0]), nil
}

// FindAll порядок частей фиксирован: where, order by, limit
func (db *DB) FindAll(ctx context.Context, s *Schema, opts FindOptions) ([]*Model, error) {
	sql := []string{s.selectSQL}
	args := append([]interface{}{}, opts.Args...)
	if opts.Where != "" {
		sql = append(sql, "where", opts.Where)
	}
	if opts.OrderBy != "" {
		sql = append(sql, "order by", opts.OrderBy)
	}
	if opts.Limit != nil {
		clause, limitArgs, err := db.limit(opts.Limit)
		if err != nil {
			return nil, err
		}
		sql = append(sql, clause)
		args = append(args, limitArgs...)
	}

	rs, err := db.exec.Select(ctx, strings.Join(sql, " "), args, 0)
	if err != nil {
		return nil, err
	}
	models := make([]*Model, 0, len(rs))
	for _, r := range rs {
		models = append(models, s.fromRow(r))
	}
	return models, nil
}

func (db *DB) limit(limit interface{}) (string, []interface{}, error) {
	var args []interface{}
	switch l := limit.(type) {
	case int:
		args = []interface{}{l}
	case int64:
		args = []interface{}{l}
	case [2]int:
		args = []interface{}{l[0], l[1]}
	case []int:
		if len(l) != 2 {
			return "", nil, fmt.Errorf("%w: %v", ErrInvalidLimit, limit)
		}
		args = []interface{}{l[0], l[1]}
	default:
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidLimit, limit)
	}

	pair := len(args) == 2
	if lim, ok := db.exec.(Limiter); ok {
		return lim.Limit(pair), args, nil
	}
	if pair {
		return "limit ?, ?", args, nil
	}
	return "limit ?", args, nil
}

// numberAlias допустим без кавычек во всех поддерживаемых СУБД (Oracle не принимает _ в начале)
const numberAlias = "num_"

// FindNumber возвращает одно агрегатное значение или nil, если строк нет
func (db *DB) FindNumber(ctx context.Context, s *Schema, selectField, where string, args ...interface{}) (interface{}, error) {
	sql := []string{fmt.Sprintf("select %s %s from %s", selectField, numberAlias, quote(s.table))}
	if where != "" {
		sql = append(sql, "where", where)
	}
	rs, err := db.exec.Select(ctx, strings.Join(sql, " "), args, 1)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, nil
	}
	v, _ := lookup(rs[0], numberAlias)
	return v, nil
}

// Save вставляет запись, подставляя значения по умолчанию для незаданных полей.
// Если затронуто не ровно одна строка, пишется предупреждение, ошибка не возвращается
func (db *DB) Save(ctx context.Context, m *Model) error {
	s := m.schema
	args := make([]interface{}, 0, len(s.fields)+1)
	for _, attr := range append(s.Fields(), s.primaryKey) {
		v, usedDefault := m.valueOrDefault(attr)
		if usedDefault {
			db.log.Debugf("using default value for %s: %v", attr, v)
		}
		args = append(args, v)
	}

	rows, err := db.exec.Execute(ctx, s.insertSQL, args)
	if err != nil {
		return err
	}
	if rows != 1 {
		db.log.Warnf("failed to insert record: affected rows: %d", rows)
	}
	return nil
}

// Update пишет текущие значения без подстановки значений по умолчанию:
// незаданное поле уходит в БД как NULL
func (db *DB) Update(ctx context.Context, m *Model) error {
	s := m.schema
	args := make([]interface{}, 0, len(s.fields)+1)
	for _, attr := range s.fields {
		args = append(args, m.GetValue(attr))
	}
	args = append(args, m.GetValue(s.primaryKey))

	rows, err := db.exec.Execute(ctx, s.updateSQL, args)
	if err != nil {
		return err
	}
	if rows != 1 {
		db.log.Warnf("failed to update by primary key: affected rows: %d", rows)
	}
	return nil
}

func (db *DB) Remove(ctx context.Context, m *Model) error {
	s := m.schema
	rows, err := db.exec.Execute(ctx, s.deleteSQL, []interface{}{m.GetValue(s.primaryKey)})
	if err != nil {
		return err
	}
	if rows != 1 {
		db.log.Warnf("failed to remove by primary key: affected rows: %d", rows)
	}
	return nil
}
