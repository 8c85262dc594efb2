package orm

import (
	"awesome_web/internal/domain"
	"fmt"
	"strings"
)

// Schema метаданные модели и готовые шаблоны SQL.
// Строится один раз через Builder и больше не меняется
type Schema struct {
	model      string
	table      string
	primaryKey string
	fields     []string // атрибуты кроме первичного ключа, в порядке объявления
	order      []string // все атрибуты в порядке объявления
	mappings   map[string]Field
	indexes    []string

	// колонка -> атрибут, в том числе по нормализованному имени
	columns    map[string]string
	normalized map[string]string

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

type Builder struct {
	model    string
	table    string
	order    []string
	mappings map[string]Field
	indexes  []string
	err      error
}

// Define начинает описание модели. Имя таблицы по умолчанию совпадает с именем модели
func Define(model string) *Builder {
	b := &Builder{model: model, mappings: make(map[string]Field)}
	if model == "" {
		b.err = ErrEmptyModel
	}
	return b
}

func (b *Builder) Table(name string) *Builder {
	b.table = name
	return b
}

func (b *Builder) Field(attr string, f Field) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.mappings[attr]; ok {
		b.err = fmt.Errorf("%w: %s.%s", ErrDuplicateField, b.model, attr)
		return b
	}
	b.mappings[attr] = f
	b.order = append(b.order, attr)
	return b
}

func (b *Builder) Index(attrs ...string) *Builder {
	b.indexes = append(b.indexes, attrs...)
	return b
}

func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}

	s := &Schema{
		model:      b.model,
		table:      b.table,
		order:      append([]string(nil), b.order...),
		mappings:   make(map[string]Field, len(b.mappings)),
		columns:    make(map[string]string, len(b.mappings)),
		normalized: make(map[string]string, len(b.mappings)),
	}
	if s.table == "" {
		s.table = b.model
	}

	for _, attr := range b.order {
		f := b.mappings[attr]
		s.mappings[attr] = f
		if f.PrimaryKey {
			if s.primaryKey != "" {
				return nil, fmt.Errorf("%w for field: %s", ErrDuplicatePrimaryKey, attr)
			}
			s.primaryKey = attr
		} else {
			s.fields = append(s.fields, attr)
		}
		col := s.column(attr)
		s.columns[col] = attr
		s.normalized[domain.NormalizeName(col)] = attr
		s.normalized[domain.NormalizeName(attr)] = attr
	}
	if s.primaryKey == "" {
		return nil, fmt.Errorf("%w in model %s", ErrPrimaryKeyNotFound, b.model)
	}

	for _, idx := range b.indexes {
		if _, ok := s.mappings[idx]; !ok {
			return nil, fmt.Errorf("index on unknown field %s.%s", b.model, idx)
		}
		s.indexes = append(s.indexes, s.column(idx))
	}

	s.render()
	return s, nil
}

// MustBuild как Build, но паникует: ошибка описания модели фатальна при старте
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) render() {
	escaped := make([]string, len(s.fields))
	assigns := make([]string, len(s.fields))
	for i, f := range s.fields {
		escaped[i] = quote(s.column(f))
		assigns[i] = quote(s.column(f)) + "=?"
	}
	pk := quote(s.column(s.primaryKey))
	table := quote(s.table)

	s.selectSQL = fmt.Sprintf("select %s from %s", strings.Join(append([]string{pk}, escaped...), ", "), table)
	s.insertSQL = fmt.Sprintf("insert into %s (%s) values (%s)",
		table, strings.Join(append(escaped, pk), ", "), argsString(len(escaped)+1))
	s.updateSQL = fmt.Sprintf("update %s set %s where %s=?", table, strings.Join(assigns, ", "), pk)
	s.deleteSQL = fmt.Sprintf("delete from %s where %s=?", table, pk)
}

func (s *Schema) column(attr string) string {
	if f, ok := s.mappings[attr]; ok && f.Name != "" {
		return f.Name
	}
	return attr
}

func (s *Schema) Model() string      { return s.model }
func (s *Schema) Table() string      { return s.table }
func (s *Schema) PrimaryKey() string { return s.primaryKey }
func (s *Schema) SelectSQL() string  { return s.selectSQL }
func (s *Schema) InsertSQL() string  { return s.insertSQL }
func (s *Schema) UpdateSQL() string  { return s.updateSQL }
func (s *Schema) DeleteSQL() string  { return s.deleteSQL }

// Fields атрибуты кроме первичного ключа
func (s *Schema) Fields() []string {
	return append([]string(nil), s.fields...)
}

func (s *Schema) Mapping(attr string) (Field, bool) {
	f, ok := s.mappings[attr]
	return f, ok
}

// Column имя колонки для атрибута
func (s *Schema) Column(attr string) string {
	return s.column(attr)
}

// Describe структура таблицы для генерации DDL
func (s *Schema) Describe() *domain.TableSchema {
	ts := &domain.TableSchema{
		Table:      s.table,
		PrimaryKey: s.column(s.primaryKey),
		Indexes:    append([]string(nil), s.indexes...),
	}
	for _, attr := range s.order {
		f := s.mappings[attr]
		ts.Columns = append(ts.Columns, domain.ColumnInfo{
			Name:       s.column(attr),
			DataType:   f.ColumnType,
			IsNullable: !f.PrimaryKey,
		})
	}
	return ts
}

func (s *Schema) String() string {
	return fmt.Sprintf("%s (table: %s)", s.model, s.table)
}

func quote(name string) string {
	return "`" + name + "`"
}

func argsString(num int) string {
	l := make([]string, num)
	for i := range l {
		l[i] = "?"
	}
	return strings.Join(l, ", ")
}
