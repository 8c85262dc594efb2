package connectors

import (
	"awesome_web/internal/config"
	"awesome_web/internal/domain"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDriver      = errors.New("unknown database driver")
	ErrMissingCredentials = errors.New("missing database credentials")
)

// Dialect скрывает различия между СУБД: DSN, маркер параметров, кавычки, LIMIT и DDL
type Dialect interface {
	// Имя драйвера для sql.Open
	DriverName() string
	DefaultPort() int
	DSN(cfg config.DatabaseConfig) string

	// Маркер n-го параметра (n с единицы)
	Placeholder(n int) string
	// Символ кавычек для идентификаторов; пустая строка - без кавычек
	IdentQuote() string

	// Limit возвращает "limit ?" или "limit ?, ?" в синтаксисе СУБД.
	// Для пары аргументы всегда идут в порядке offset, count
	Limit(pair bool) string

	ColumnType(columnType string) string
	CreateTableSQL(schema *domain.TableSchema) []string
}

func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "", "mysql", "mariadb":
		return MariaDBDialect{}, nil
	case "oracle":
		return OracleDialect{}, nil
	case "postgres", "postgresql":
		return PostgresDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

// prepareConfig подставляет значения по умолчанию и проверяет обязательные поля
func prepareConfig(cfg config.DatabaseConfig) (config.DatabaseConfig, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return cfg, nil, err
	}
	if err := config.ApplyDefaults(&cfg); err != nil {
		return cfg, nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = dialect.DefaultPort()
	}

	// user, password и db обязательны
	var missing []string
	if cfg.User == "" {
		missing = append(missing, "user")
	}
	if cfg.Password == "" {
		missing = append(missing, "password")
	}
	if cfg.DBName == "" {
		missing = append(missing, "db")
	}
	if len(missing) > 0 {
		return cfg, nil, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if cfg.MinSize > cfg.MaxSize {
		return cfg, nil, fmt.Errorf("minsize %d exceeds maxsize %d", cfg.MinSize, cfg.MaxSize)
	}
	return cfg, dialect, nil
}

// renderColumns собирает определения колонок и первичный ключ для CREATE TABLE
func renderColumns(d Dialect, schema *domain.TableSchema, autoIncrement string) []string {
	var createColumns []string
	for _, col := range schema.Columns {
		colDef := fmt.Sprintf("%s %s", quoteIdent(d, col.Name), d.ColumnType(col.DataType))
		if !col.IsNullable {
			colDef += " NOT NULL"
		}
		if col.AutoIncrement && autoIncrement != "" {
			colDef += " " + autoIncrement
		}
		createColumns = append(createColumns, colDef)
	}

	// Добавляем основной ключ если есть
	if schema.PrimaryKey != "" {
		createColumns = append(createColumns, fmt.Sprintf("PRIMARY KEY (%s)", quoteIdent(d, schema.PrimaryKey)))
	}
	return createColumns
}

func quoteIdent(d Dialect, name string) string {
	q := d.IdentQuote()
	return q + name + q
}
