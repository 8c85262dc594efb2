package connectors

import (
	"awesome_web/internal/config"
	"awesome_web/internal/domain"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// PostgresDialect маркеры $1, $2 ...; кавычки "
type PostgresDialect struct{}

func (PostgresDialect) DriverName() string { return "postgres" }

func (PostgresDialect) DefaultPort() int { return 5432 }

func (PostgresDialect) DSN(cfg config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)
	q.Set("connect_timeout", strconv.Itoa(cfg.Timeout))
	if cfg.Charset != "" {
		q.Set("client_encoding", postgresEncoding(cfg.Charset))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (PostgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (PostgresDialect) IdentQuote() string { return `"` }

func (PostgresDialect) Limit(pair bool) string {
	if pair {
		return "offset ? limit ?"
	}
	return "limit ?"
}

func (PostgresDialect) ColumnType(columnType string) string {
	switch strings.ToLower(columnType) {
	case "mediumtext", "longtext":
		return "text"
	case "real":
		return "double precision"
	}
	return columnType
}

func (d PostgresDialect) CreateTableSQL(schema *domain.TableSchema) []string {
	table := pq.QuoteIdentifier(schema.Table)
	stmts := []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		table, strings.Join(renderColumns(d, schema, "GENERATED BY DEFAULT AS IDENTITY"), ", "))}
	for _, idx := range schema.Indexes {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			pq.QuoteIdentifier("idx_"+schema.Table+"_"+idx), table, pq.QuoteIdentifier(idx)))
	}
	return stmts
}

// utf8 в терминах MySQL соответствует UTF8 в PostgreSQL
func postgresEncoding(charset string) string {
	switch strings.ToLower(charset) {
	case "utf8", "utf8mb4":
		return "UTF8"
	}
	return charset
}
