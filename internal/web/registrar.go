package web

import (
	"awesome_web/internal/logger"
	"fmt"
	"os"
	"regexp"

	"github.com/gin-gonic/gin"
)

// Module набор маршрутов, который регистрируется целиком
type Module interface {
	Routes() []Route
}

// Routes позволяет передать в AddRoutes обычный срез маршрутов
type Routes []Route

func (r Routes) Routes() []Route { return r }

var pathParam = regexp.MustCompile(`\{(\w+)\}`)

// ginPath переводит /blog/{id} в синтаксис gin /blog/:id
func ginPath(path string) string {
	return pathParam.ReplaceAllString(path, ":$1")
}

// AddRoute регистрирует один маршрут. Ошибка здесь - ошибка конфигурации, сервер не должен стартовать
func AddRoute(router gin.IRoutes, route Route, log *logger.Log) (err error) {
	if log == nil {
		log = logger.Discard()
	}
	h, err := NewRequestHandler(route, log)
	if err != nil {
		return err
	}

	// gin паникует при конфликте маршрутов
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("add route %s %s: %v", route.Method, route.Path, r)
		}
	}()

	log.Infof("add route %s %s => %s", route.Method, route.Path, route)
	router.Handle(route.Method, ginPath(route.Path), h.Handle)
	return nil
}

func AddRoutes(router gin.IRoutes, module Module, log *logger.Log) error {
	for _, route := range module.Routes() {
		if err := AddRoute(router, route, log); err != nil {
			return err
		}
	}
	return nil
}

// AddStatic отдает файлы из dir по префиксу /static/
func AddStatic(router gin.IRoutes, dir string, log *logger.Log) {
	if log == nil {
		log = logger.Discard()
	}
	if _, err := os.Stat(dir); err != nil {
		log.Warnf("static dir %s is not accessible: %v", dir, err)
	}
	router.Static("/static", dir)
	log.Infof("add static %s => %s", "/static/", dir)
}
