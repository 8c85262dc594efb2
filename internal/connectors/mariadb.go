package connectors

import (
	"awesome_web/internal/config"
	"awesome_web/internal/domain"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MariaDBDialect MySQL/MariaDB: маркер ?, кавычки `
type MariaDBDialect struct{}

func (MariaDBDialect) DriverName() string { return "mysql" }

func (MariaDBDialect) DefaultPort() int { return 3306 }

// DSN собирает строку подключения через драйвер, спецсимволы в пароле и имени БД экранируются
func (MariaDBDialect) DSN(cfg config.DatabaseConfig) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.DBName
	c.ParseTime = true
	c.Timeout = time.Duration(cfg.Timeout) * time.Second
	c.Params = map[string]string{
		"charset":    cfg.Charset,
		"autocommit": strconv.FormatBool(cfg.AutocommitEnabled()),
	}
	return c.FormatDSN()
}

func (MariaDBDialect) Placeholder(int) string { return "?" }

func (MariaDBDialect) IdentQuote() string { return "`" }

func (MariaDBDialect) Limit(pair bool) string {
	if pair {
		return "limit ?, ?"
	}
	return "limit ?"
}

func (MariaDBDialect) ColumnType(columnType string) string { return columnType }

func (d MariaDBDialect) CreateTableSQL(schema *domain.TableSchema) []string {
	createColumns := renderColumns(d, schema, "AUTO_INCREMENT")

	// Добавляем индексы если есть
	for _, idx := range schema.Indexes {
		createColumns = append(createColumns, fmt.Sprintf("INDEX idx_%s (%s)", idx, quoteIdent(d, idx)))
	}
	return []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s) ENGINE=InnoDB",
		quoteIdent(d, schema.Table), strings.Join(createColumns, ", "))}
}
