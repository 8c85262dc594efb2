package orm

import (
	"awesome_web/internal/domain"
)

// attrFor ищет атрибут для колонки результата: сначала по точному имени,
// потом по имени колонки, потом по нормализованному имени (Oracle отдает имена в верхнем регистре)
func (s *Schema) attrFor(column string) (string, bool) {
	if _, ok := s.mappings[column]; ok {
		return column, true
	}
	if attr, ok := s.columns[column]; ok {
		return attr, true
	}
	if attr, ok := s.normalized[domain.NormalizeName(column)]; ok {
		return attr, true
	}
	return "", false
}

// fromRow собирает модель из строки результата. Неизвестные колонки сохраняются как есть
func (s *Schema) fromRow(row domain.Record) *Model {
	m := &Model{schema: s, values: make(domain.Record, len(row))}
	for col, v := range row {
		if attr, ok := s.attrFor(col); ok {
			m.values[attr] = v
			continue
		}
		m.values[col] = v
	}
	return m
}

// lookup достает значение колонки без учета регистра
func lookup(row domain.Record, column string) (interface{}, bool) {
	if v, ok := row[column]; ok {
		return v, true
	}
	want := domain.NormalizeName(column)
	for k, v := range row {
		if domain.NormalizeName(k) == want {
			return v, true
		}
	}
	return nil, false
}
