package connectors

import (
	"awesome_web/internal/config"
	"awesome_web/internal/domain"
	"fmt"
	"strconv"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"
)

// OracleDialect маркеры :1, :2 ...; идентификаторы без кавычек,
// иначе Oracle станет различать регистр имен
type OracleDialect struct{}

func (OracleDialect) DriverName() string { return "oracle" }

func (OracleDialect) DefaultPort() int { return 1521 }

func (OracleDialect) DSN(cfg config.DatabaseConfig) string {
	options := map[string]string{
		"TIMEOUT": strconv.Itoa(cfg.Timeout),
	}
	return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.DBName, cfg.User, cfg.Password, options)
}

func (OracleDialect) Placeholder(n int) string { return fmt.Sprintf(":%d", n) }

func (OracleDialect) IdentQuote() string { return "" }

func (OracleDialect) Limit(pair bool) string {
	if pair {
		return "offset ? rows fetch next ? rows only"
	}
	return "fetch first ? rows only"
}

func (OracleDialect) ColumnType(columnType string) string {
	t := strings.ToLower(columnType)
	switch {
	case t == "bigint":
		return "NUMBER(19)"
	case t == "boolean":
		return "NUMBER(1)"
	case t == "real":
		return "BINARY_DOUBLE"
	case t == "text" || t == "mediumtext" || t == "longtext":
		return "CLOB"
	case strings.HasPrefix(t, "varchar("):
		return "VARCHAR2" + columnType[len("varchar"):]
	}
	return columnType
}

// CreateTableSQL Oracle не поддерживает IF NOT EXISTS, поэтому мы используем блок PL/SQL
// и игнорируем ORA-00955 (имя уже занято)
func (d OracleDialect) CreateTableSQL(schema *domain.TableSchema) []string {
	stmts := []string{
		ignoreExisting(fmt.Sprintf("CREATE TABLE %s (%s)",
			schema.Table, strings.Join(renderColumns(d, schema, "GENERATED BY DEFAULT AS IDENTITY"), ", "))),
	}
	for _, idx := range schema.Indexes {
		stmts = append(stmts, ignoreExisting(fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s (%s)",
			schema.Table, idx, schema.Table, idx)))
	}
	return stmts
}

func ignoreExisting(ddl string) string {
	return fmt.Sprintf(`BEGIN
   EXECUTE IMMEDIATE '%s';
 EXCEPTION
   WHEN OTHERS THEN
     IF SQLCODE != -955 THEN
       RAISE;
     END IF;
 END;`, strings.ReplaceAll(ddl, "'", "''"))
}
