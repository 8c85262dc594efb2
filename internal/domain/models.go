package domain

import "strings"

// Record одна строка результата запроса или набор значений модели
type Record map[string]interface{}

// Has отличает отсутствующий ключ от ключа со значением nil
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Copy неглубокая копия записи
func (r Record) Copy() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// TableSchema описывает структуру таблицы для DDL
type TableSchema struct {
	Table      string
	Columns    []ColumnInfo
	PrimaryKey string
	Indexes    []string
}

type ColumnInfo struct {
	Name          string
	DataType      string
	IsNullable    bool
	AutoIncrement bool
}

// GetColumnName возвращает имя колонки; при isMapping нормализует его
// (нижний регистр, без подчеркиваний) для сопоставления колонок из разных СУБД
func (c *ColumnInfo) GetColumnName(isMapping bool) string {
	if isMapping {
		return NormalizeName(c.Name)
	}
	return c.Name
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}
