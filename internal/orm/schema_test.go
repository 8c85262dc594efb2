package orm

import (
	"errors"
	"strings"
	"testing"
)

func TestSchemaTemplates(t *testing.T) {
	s, err := Define("Blog").
		Field("id", StringField(PrimaryKey())).
		Field("a", StringField()).
		Field("b", IntegerField()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if s.Table() != "Blog" {
		t.Errorf("table name must default to model name, got %s", s.Table())
	}

	tests := []struct {
		name, got, want string
	}{
		{"select", s.SelectSQL(), "select `id`, `a`, `b` from `Blog`"},
		{"insert", s.InsertSQL(), "insert into `Blog` (`a`, `b`, `id`) values (?, ?, ?)"},
		{"update", s.UpdateSQL(), "update `Blog` set `a`=?, `b`=? where `id`=?"},
		{"delete", s.DeleteSQL(), "delete from `Blog` where `id`=?"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s:\n  got  %s\n  want %s", tt.name, tt.got, tt.want)
		}
	}

	if n := strings.Count(s.InsertSQL(), "?"); n != len(s.Fields())+1 {
		t.Errorf("insert placeholders = %d, want %d", n, len(s.Fields())+1)
	}
}

func TestSchemaColumnOverride(t *testing.T) {
	if got := testUser.SelectSQL(); got != "select `id`, `email`, `admin`, `age`, `user_name` from `users`" {
		t.Errorf("select = %s", got)
	}
	if got := testUser.UpdateSQL(); !strings.Contains(got, "`user_name`=?") {
		t.Errorf("update must use column override, got %s", got)
	}
	if got := testUser.Fields(); strings.Join(got, ",") != "email,admin,age,name" {
		t.Errorf("fields = %v", got)
	}
}

func TestSchemaPrimaryKeyRequired(t *testing.T) {
	_, err := Define("NoKey").Field("name", StringField()).Build()
	if !errors.Is(err, ErrPrimaryKeyNotFound) {
		t.Fatalf("expected ErrPrimaryKeyNotFound, got %v", err)
	}

	_, err = Define("TwoKeys").
		Field("id", StringField(PrimaryKey())).
		Field("other", IntegerField(PrimaryKey())).
		Build()
	if !errors.Is(err, ErrDuplicatePrimaryKey) {
		t.Fatalf("expected ErrDuplicatePrimaryKey, got %v", err)
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustBuild must panic without primary key")
		}
	}()
	Define("Broken").Field("x", TextField()).MustBuild()
}

func TestSchemaDuplicateField(t *testing.T) {
	_, err := Define("Dup").
		Field("id", StringField(PrimaryKey())).
		Field("id", StringField()).
		Build()
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := BooleanField(PrimaryKey()); f.PrimaryKey {
		t.Error("boolean field cannot be a primary key")
	}
	if f := TextField(DDL("varchar(5)")); f.ColumnType != "text" {
		t.Errorf("text field ignores DDL, got %s", f.ColumnType)
	}
	if f := IntegerField(); f.Default != int64(0) || f.ColumnType != "bigint" {
		t.Errorf("unexpected integer field: %+v", f)
	}
	if f := FloatField(); f.Default != 0.0 || f.ColumnType != "real" {
		t.Errorf("unexpected float field: %+v", f)
	}

	calls := 0
	f := StringField(Default(func() string { calls++; return "gen" }))
	if v := f.DefaultValue(); v != "gen" || calls != 1 {
		t.Errorf("generator default = %v (calls %d)", v, calls)
	}
}

func TestSchemaDescribe(t *testing.T) {
	s := Define("Comment").
		Table("comments").
		Field("id", StringField(PrimaryKey(), DDL("varchar(50)"))).
		Field("content", TextField()).
		Field("created_at", FloatField()).
		Index("created_at").
		MustBuild()

	ts := s.Describe()
	if ts.Table != "comments" || ts.PrimaryKey != "id" {
		t.Errorf("unexpected table schema: %+v", ts)
	}
	if len(ts.Columns) != 3 || ts.Columns[0].IsNullable || !ts.Columns[1].IsNullable {
		t.Errorf("unexpected columns: %+v", ts.Columns)
	}
	if len(ts.Indexes) != 1 || ts.Indexes[0] != "created_at" {
		t.Errorf("unexpected indexes: %v", ts.Indexes)
	}

	if _, err := Define("Bad").Field("id", StringField(PrimaryKey())).Index("nope").Build(); err == nil {
		t.Error("expected error for index on unknown field")
	}
}
