package web

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

var (
	ErrRouteNotDecorated = errors.New("@get or @post not defined")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	ErrRequestParamOrder = errors.New("request parameter must be the last named parameter")
	ErrDuplicateParam    = errors.New("duplicate parameter")
)

// RequestParamName имя параметра, под которым обработчик получает *http.Request
const RequestParamName = "request"

type ParamKind int

const (
	// KindPositional обычный параметр; заполняется только из параметров пути
	KindPositional ParamKind = iota
	// KindNamed именованный параметр; заполняется из тела запроса, query string и пути
	KindNamed
	// KindVariadic принимает все ключи запроса без фильтрации
	KindVariadic
	// KindContext сам запрос
	KindContext
)

func (k ParamKind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindNamed:
		return "named"
	case KindVariadic:
		return "variadic"
	case KindContext:
		return "context"
	}
	return "unknown"
}

// Param описание одного параметра обработчика
type Param struct {
	Name     string
	Kind     ParamKind
	Required bool
}

func Positional(name string) Param { return Param{Name: name, Kind: KindPositional, Required: true} }

// Named обязательный именованный параметр
func Named(name string) Param { return Param{Name: name, Kind: KindNamed, Required: true} }

// Optional именованный параметр со значением по умолчанию
func Optional(name string) Param { return Param{Name: name, Kind: KindNamed} }

func Variadic(name string) Param { return Param{Name: name, Kind: KindVariadic} }

func Request() Param { return Param{Name: RequestParamName, Kind: KindContext} }

// Kwargs набор аргументов, собранный из запроса
type Kwargs map[string]interface{}

type HandlerFunc func(ctx context.Context, kw Kwargs) (interface{}, error)

// Route обработчик вместе с методом, путем и описанием параметров
type Route struct {
	Method string
	Path   string
	Name   string
	Params []Param
	Fn     HandlerFunc
}

func Get(path string, fn HandlerFunc, params ...Param) Route {
	return newRoute(http.MethodGet, path, fn, params)
}

func Post(path string, fn HandlerFunc, params ...Param) Route {
	return newRoute(http.MethodPost, path, fn, params)
}

func newRoute(method, path string, fn HandlerFunc, params []Param) Route {
	return Route{Method: method, Path: path, Name: funcName(fn), Params: params, Fn: fn}
}

func (r Route) String() string {
	names := make([]string, len(r.Params))
	for i, p := range r.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s(%s)", r.Name, strings.Join(names, ", "))
}

func funcName(fn HandlerFunc) string {
	if fn == nil {
		return "<nil>"
	}
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// binding результат разбора параметров обработчика; считается один раз при регистрации
type binding struct {
	requestArg string
	hasVarKw   bool
	namedKw    []string
	requiredKw []string
}

func newBinding(params []Param) (binding, error) {
	var b binding
	seen := make(map[string]bool, len(params))
	found := false

	for _, p := range params {
		if p.Name == "" {
			return b, fmt.Errorf("parameter without name")
		}
		if seen[p.Name] {
			return b, fmt.Errorf("%w: %s", ErrDuplicateParam, p.Name)
		}
		seen[p.Name] = true

		if p.Kind == KindContext || p.Name == RequestParamName {
			if found {
				return b, fmt.Errorf("%w: %s", ErrDuplicateParam, p.Name)
			}
			found = true
			b.requestArg = p.Name
			continue
		}
		// после request допустимы только именованные и variadic параметры
		if found && p.Kind == KindPositional {
			return b, fmt.Errorf("%w: %s follows %s", ErrRequestParamOrder, p.Name, b.requestArg)
		}

		switch p.Kind {
		case KindNamed:
			b.namedKw = append(b.namedKw, p.Name)
			if p.Required {
				b.requiredKw = append(b.requiredKw, p.Name)
			}
		case KindVariadic:
			b.hasVarKw = true
		}
	}
	return b, nil
}

func (b binding) needsKw() bool {
	return b.hasVarKw || len(b.namedKw) > 0 || len(b.requiredKw) > 0
}

func (kw Kwargs) Has(name string) bool {
	_, ok := kw[name]
	return ok
}

// String значение как строка; для отсутствующего ключа пустая строка
func (kw Kwargs) String(name string) string {
	v, ok := kw[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int значение как число; def если ключа нет или он пустой
func (kw Kwargs) Int(name string, def int) (int, error) {
	v, ok := kw[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return def, fmt.Errorf("%s: %v is not an integer", name, n)
		}
		return int(n), nil
	case string:
		if n == "" {
			return def, nil
		}
		i, err := strconv.Atoi(n)
		if err != nil {
			return def, fmt.Errorf("%s: %w", name, err)
		}
		return i, nil
	}
	return def, fmt.Errorf("%s: unexpected type %T", name, v)
}

// Request исходный запрос, если обработчик объявил параметр request
func (kw Kwargs) Request() *http.Request {
	r, _ := kw[RequestParamName].(*http.Request)
	return r
}
