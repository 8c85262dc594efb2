package connectors

import (
	"awesome_web/internal/config"
	"awesome_web/internal/domain"
	"awesome_web/internal/logger"
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Pool пул соединений и исполнитель запросов.
// Создается явно и передается туда, где нужен; глобального состояния нет
type Pool struct {
	db      *sql.DB
	dialect Dialect
	log     *logger.Log
}

// CreatePool открывает пул по конфигу. maxsize ограничивает число одновременно
// выданных соединений: при исчерпании запрос ждет освобождения соединения
func CreatePool(ctx context.Context, cfg config.DatabaseConfig, log *logger.Log) (*Pool, error) {
	if log == nil {
		log = logger.Discard()
	}
	cfg, dialect, err := prepareConfig(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("create database connection pool %s@%s:%d/%s (min=%d, max=%d)",
		dialect.DriverName(), cfg.Host, cfg.Port, cfg.DBName, cfg.MinSize, cfg.MaxSize)

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxSize)
	db.SetMaxIdleConns(cfg.MinSize)
	db.SetConnMaxLifetime(5 * time.Minute)

	pool := NewPool(db, dialect, log)
	if err := pool.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	return pool, nil
}

// NewPool оборачивает уже открытый *sql.DB
func NewPool(db *sql.DB, dialect Dialect, log *logger.Log) *Pool {
	if log == nil {
		log = logger.Discard()
	}
	return &Pool{db: db, dialect: dialect, log: log}
}

func (p *Pool) Dialect() Dialect { return p.dialect }

func (p *Pool) Ping(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("not connected to database")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return p.db.PingContext(ctx)
}

func (p *Pool) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// Limit реализует orm.Limiter
func (p *Pool) Limit(pair bool) string {
	return p.dialect.Limit(pair)
}

// Select выполняет запрос на чтение. size > 0 ограничивает число строк,
// иначе читаются все. Соединение возвращается в пул при любом исходе
func (p *Pool) Select(ctx context.Context, query string, args []interface{}, size int) ([]domain.Record, error) {
	p.log.Infof("SQL: %s", query)

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, Rebind(p.dialect, query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0)
	values := make([]interface{}, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if size > 0 && len(records) >= size {
			break
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}
		records = append(records, toRecord(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	p.log.Infof("rows returned: %d", len(records))
	return records, nil
}

// Execute выполняет запрос на запись и возвращает число затронутых строк.
// Ошибки драйвера возвращаются как есть
func (p *Pool) Execute(ctx context.Context, query string, args []interface{}) (int64, error) {
	p.log.Infof("SQL: %s", query)

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, Rebind(p.dialect, query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CreateTable создает таблицу по схеме, если ее еще нет
func (p *Pool) CreateTable(ctx context.Context, schema *domain.TableSchema) error {
	for _, stmt := range p.dialect.CreateTableSQL(schema) {
		p.log.Infof("SQL: %s", stmt)
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s failed: %w", schema.Table, err)
		}
	}
	return nil
}

func toRecord(columns []string, values []interface{}) domain.Record {
	record := make(domain.Record, len(columns))
	for i, col := range columns {
		// Конвертируем []byte в string (для TEXT, BLOB и т.д.)
		switch v := values[i].(type) {
		case nil:
			record[col] = nil
		case []byte:
			record[col] = string(v)
		case time.Time, string, bool, int, int32, int64, uint64, float32, float64:
			record[col] = v
		default:
			record[col] = fmt.Sprintf("%v", v)
		}
	}
	return record
}
