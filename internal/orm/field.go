package orm

import (
	"fmt"
	"reflect"
)

// Field описание колонки модели. Значение неизменяемо после создания
type Field struct {
	// Имя колонки в БД; пустое - совпадает с именем атрибута
	Name       string
	ColumnType string
	PrimaryKey bool
	// Константа, генератор без аргументов или nil
	Default interface{}

	kind string
}

type FieldOption func(*Field)

func Column(name string) FieldOption {
	return func(f *Field) { f.Name = name }
}

func PrimaryKey() FieldOption {
	return func(f *Field) { f.PrimaryKey = true }
}

// Default задает значение по умолчанию. Допустимы константа
// и функции вида func() T, которые вызываются в момент save
func Default(v interface{}) FieldOption {
	return func(f *Field) { f.Default = v }
}

// DDL тип колонки; учитывается только у StringField
func DDL(columnType string) FieldOption {
	return func(f *Field) { f.ColumnType = columnType }
}

func StringField(opts ...FieldOption) Field {
	return newField("StringField", "varchar(100)", nil, opts, true, true)
}

func BooleanField(opts ...FieldOption) Field {
	return newField("BooleanField", "boolean", false, opts, false, false)
}

func IntegerField(opts ...FieldOption) Field {
	return newField("IntegerField", "bigint", int64(0), opts, true, false)
}

func FloatField(opts ...FieldOption) Field {
	return newField("FloatField", "real", 0.0, opts, true, false)
}

func TextField(opts ...FieldOption) Field {
	return newField("TextField", "text", nil, opts, false, false)
}

func newField(kind, columnType string, def interface{}, opts []FieldOption, allowPK, allowDDL bool) Field {
	f := Field{ColumnType: columnType, Default: def, kind: kind}
	for _, opt := range opts {
		opt(&f)
	}
	if !allowPK {
		f.PrimaryKey = false
	}
	if !allowDDL {
		f.ColumnType = columnType
	}
	return f
}

// DefaultValue вычисляет значение по умолчанию. Генератор - любая функция
// без аргументов с одним результатом, она вызывается при каждом обращении
func (f Field) DefaultValue() interface{} {
	if f.Default == nil {
		return nil
	}
	if fn, ok := f.Default.(func() interface{}); ok {
		return fn()
	}
	v := reflect.ValueOf(f.Default)
	if v.Kind() == reflect.Func && v.Type().NumIn() == 0 && v.Type().NumOut() == 1 {
		return v.Call(nil)[0].Interface()
	}
	return f.Default
}

func (f Field) String() string {
	kind := f.kind
	if kind == "" {
		kind = "Field"
	}
	return fmt.Sprintf("<%s, %s:%s>", kind, f.ColumnType, f.Name)
}
