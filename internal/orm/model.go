package orm

import (
	"awesome_web/internal/domain"
	"encoding/json"
	"fmt"
)

// Model одна строка таблицы: схема плюс текущие значения полей
type Model struct {
	schema *Schema
	values domain.Record
}

// New создает модель из набора значений. Ключи вне схемы сохраняются как есть
func (s *Schema) New(values domain.Record) *Model {
	m := &Model{schema: s, values: make(domain.Record, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Model) Schema() *Schema { return m.schema }

func (m *Model) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Model) Set(key string, value interface{}) {
	m.values[key] = value
}

// GetValue текущее значение или nil, без подстановки значения по умолчанию
func (m *Model) GetValue(key string) interface{} {
	return m.values[key]
}

// GetValueOrDefault при отсутствии значения подставляет и запоминает значение по умолчанию
func (m *Model) GetValueOrDefault(key string) interface{} {
	v, _ := m.valueOrDefault(key)
	return v
}

func (m *Model) valueOrDefault(key string) (interface{}, bool) {
	value := m.values[key]
	if value != nil {
		return value, false
	}
	field, ok := m.schema.mappings[key]
	if !ok || field.Default == nil {
		return nil, false
	}
	value = field.DefaultValue()
	m.values[key] = value
	return value, true
}

// Values копия значений
func (m *Model) Values() domain.Record {
	return m.values.Copy()
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.values)
}

func (m *Model) String() string {
	return fmt.Sprintf("%s%v", m.schema.model, map[string]interface{}(m.values))
}
