package app

import (
	"awesome_web/internal/orm"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NextID 50 символов: время в миллисекундах (15 цифр), 32 hex случайных байт и 000.
// Строки сортируются по времени создания
func NextID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%015d%s000", time.Now().UnixMilli(), hex.EncodeToString(b[:]))
}

func nextID() interface{} { return NextID() }

func now() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

var User = orm.Define("User").
	Table("users").
	Field("id", orm.StringField(orm.PrimaryKey(), orm.Default(nextID), orm.DDL("varchar(50)"))).
	Field("email", orm.StringField(orm.DDL("varchar(50)"))).
	Field("passwd", orm.StringField(orm.DDL("varchar(50)"))).
	Field("admin", orm.BooleanField()).
	Field("name", orm.StringField(orm.DDL("varchar(50)"))).
	Field("image", orm.StringField(orm.DDL("varchar(500)"))).
	Field("created_at", orm.FloatField(orm.Default(now))).
	Index("email", "created_at").
	MustBuild()

var Blog = orm.Define("Blog").
	Table("blogs").
	Field("id", orm.StringField(orm.PrimaryKey(), orm.Default(nextID), orm.DDL("varchar(50)"))).
	Field("user_id", orm.StringField(orm.DDL("varchar(50)"))).
	Field("user_name", orm.StringField(orm.DDL("varchar(50)"))).
	Field("user_image", orm.StringField(orm.DDL("varchar(500)"))).
	Field("name", orm.StringField(orm.DDL("varchar(50)"))).
	Field("summary", orm.StringField(orm.DDL("varchar(200)"))).
	Field("content", orm.TextField()).
	Field("created_at", orm.FloatField(orm.Default(now))).
	Index("created_at").
	MustBuild()

var Comment = orm.Define("Comment").
	Table("comments").
	Field("id", orm.StringField(orm.PrimaryKey(), orm.Default(nextID), orm.DDL("varchar(50)"))).
	Field("blog_id", orm.StringField(orm.DDL("varchar(50)"))).
	Field("user_id", orm.StringField(orm.DDL("varchar(50)"))).
	Field("user_name", orm.StringField(orm.DDL("varchar(50)"))).
	Field("user_image", orm.StringField(orm.DDL("varchar(500)"))).
	Field("content", orm.TextField()).
	Field("created_at", orm.FloatField(orm.Default(now))).
	Index("created_at").
	MustBuild()

// Schemas все модели приложения в порядке создания таблиц
func Schemas() []*orm.Schema {
	return []*orm.Schema{User, Blog, Comment}
}
