package app

import (
	"awesome_web/internal/apis"
	"awesome_web/internal/logger"
	"awesome_web/internal/orm"
	"awesome_web/internal/web"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UserHeader заголовок с id автора комментария; авторизации в приложении нет
const UserHeader = "X-User-Id"

const maskedPasswd = "******"

var emailRe = regexp.MustCompile(`^[a-z0-9.\-_]+@[a-z0-9\-_]+(\.[a-z0-9\-_]+){1,4}$`)

// App демонстрационный блог поверх orm и web
type App struct {
	db  *orm.DB
	log *logger.Log
}

func New(db *orm.DB, log *logger.Log) *App {
	if log == nil {
		log = logger.Discard()
	}
	return &App{db: db, log: log}
}

func (a *App) Routes() []web.Route {
	return []web.Route{
		web.Get("/api/users", a.listUsers, web.Optional("page"), web.Optional("limit")),
		web.Get("/api/users/{id}", a.getUser, web.Positional("id")),
		web.Post("/api/users", a.createUser,
			web.Named("name"), web.Named("email"), web.Named("passwd"), web.Optional("image")),
		web.Get("/api/blogs/{id}", a.getBlog, web.Positional("id")),
		web.Get("/api/blogs/{id}/comments", a.listComments, web.Positional("id")),
		web.Post("/api/blogs/{id}/comments", a.createComment,
			web.Named("id"), web.Named("content"), web.Request()),
	}
}

func (a *App) listUsers(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	pageIndex, err := kw.Int("page", 1)
	if err != nil {
		return nil, apis.ValueError("page", err.Error())
	}
	pageSize, err := kw.Int("limit", 10)
	if err != nil || pageSize <= 0 {
		return nil, apis.ValueError("limit", "Invalid limit.")
	}

	num, err := a.db.FindNumber(ctx, User, "count(`id`)", "")
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	p := NewPage(toInt(num), pageIndex, pageSize)
	if p.ItemCount == 0 {
		return map[string]interface{}{"page": p, "users": []*orm.Model{}}, nil
	}

	users, err := a.db.FindAll(ctx, User, orm.FindOptions{
		OrderBy: "`created_at` desc",
		Limit:   [2]int{p.Offset, p.Limit},
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		u.Set("passwd", maskedPasswd)
	}
	return map[string]interface{}{"page": p, "users": users}, nil
}

func (a *App) getUser(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	user, err := a.findOrNotFound(ctx, User, "user", kw.String("id"))
	if err != nil {
		return nil, err
	}
	user.Set("passwd", maskedPasswd)
	return user, nil
}

func (a *App) createUser(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	name := strings.TrimSpace(kw.String("name"))
	email := strings.ToLower(strings.TrimSpace(kw.String("email")))
	passwd := kw.String("passwd")
	if name == "" {
		return nil, apis.ValueError("name", "Name is empty.")
	}
	if !emailRe.MatchString(email) {
		return nil, apis.ValueError("email", "Invalid email.")
	}
	if passwd == "" {
		return nil, apis.ValueError("passwd", "Password is empty.")
	}

	existing, err := a.db.FindAll(ctx, User, orm.FindOptions{Where: "`email`=?", Args: []interface{}{email}})
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if len(existing) > 0 {
		return nil, apis.NewAPIError("register:failed", "email", "Email is already in use.")
	}

	image := kw.String("image")
	if image == "" {
		image = "about:blank"
	}
	id := NextID()
	user := User.New(map[string]interface{}{
		"id":     id,
		"name":   name,
		"email":  email,
		"passwd": hashPasswd(id, passwd),
		"image":  image,
	})
	if err := a.db.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	a.log.Infof("user registered: %s", email)
	user.Set("passwd", maskedPasswd)
	return user, nil
}

func (a *App) getBlog(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	return a.findOrNotFound(ctx, Blog, "blog", kw.String("id"))
}

func (a *App) listComments(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	blog, err := a.findOrNotFound(ctx, Blog, "blog", kw.String("id"))
	if err != nil {
		return nil, err
	}
	comments, err := a.db.FindAll(ctx, Comment, orm.FindOptions{
		Where:   "`blog_id`=?",
		Args:    []interface{}{blog.GetValue("id")},
		OrderBy: "`created_at` desc",
	})
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return map[string]interface{}{"comments": comments}, nil
}

func (a *App) createComment(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	req := kw.Request()
	userID := ""
	if req != nil {
		userID = req.Header.Get(UserHeader)
	}
	if userID == "" {
		return nil, apis.PermissionError("Please signin first.")
	}
	user, err := a.db.Find(ctx, User, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apis.PermissionError("Please signin first.")
	}

	content := strings.TrimSpace(kw.String("content"))
	if content == "" {
		return nil, apis.ValueError("content", "Content is empty.")
	}
	blog, err := a.findOrNotFound(ctx, Blog, "blog", kw.String("id"))
	if err != nil {
		return nil, err
	}

	comment := Comment.New(map[string]interface{}{
		"blog_id":    blog.GetValue("id"),
		"user_id":    user.GetValue("id"),
		"user_name":  user.GetValue("name"),
		"user_image": user.GetValue("image"),
		"content":    content,
	})
	if err := a.db.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}
	return comment, nil
}

func (a *App) findOrNotFound(ctx context.Context, s *orm.Schema, resource, id string) (*orm.Model, error) {
	m, err := a.db.Find(ctx, s, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", resource, id, err)
	}
	if m == nil {
		return nil, apis.ResourceNotFoundError(resource, fmt.Sprintf("%s %s not found.", s.Model(), id))
	}
	return m, nil
}

// hashPasswd sha1 от "id:passwd", в hex
func hashPasswd(id, passwd string) string {
	sum := sha1.Sum([]byte(id + ":" + passwd))
	return hex.EncodeToString(sum[:])
}

// toInt приводит результат агрегата к int; драйверы возвращают разные типы
func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
