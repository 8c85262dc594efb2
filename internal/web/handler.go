package web

import (
	"awesome_web/internal/apis"
	"awesome_web/internal/logger"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxMultipartMemory = 32 << 20

// RequestHandler связывает Route с gin: собирает аргументы из запроса,
// вызывает обработчик и превращает результат в ответ
type RequestHandler struct {
	route   Route
	binding binding
	log     *logger.Log
}

func NewRequestHandler(route Route, log *logger.Log) (*RequestHandler, error) {
	if route.Method == "" || route.Path == "" {
		return nil, fmt.Errorf("%w in %s", ErrRouteNotDecorated, route)
	}
	if route.Method != http.MethodGet && route.Method != http.MethodPost {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, route.Method)
	}
	if route.Fn == nil {
		return nil, fmt.Errorf("route %s %s has no handler", route.Method, route.Path)
	}
	b, err := newBinding(route.Params)
	if err != nil {
		return nil, fmt.Errorf("route %s %s: %w", route.Method, route.Path, err)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &RequestHandler{route: route, binding: b, log: log}, nil
}

// clientError ошибка входных данных, отдается как 400
type clientError struct {
	message string
}

func (e *clientError) Error() string { return e.message }

func badRequest(format string, args ...interface{}) *clientError {
	return &clientError{message: fmt.Sprintf(format, args...)}
}

func (h *RequestHandler) Handle(c *gin.Context) {
	kw, cerr := h.bind(c)
	if cerr != nil {
		c.String(http.StatusBadRequest, cerr.message)
		return
	}

	h.log.Infof("call with args: %s", describeArgs(kw))
	result, err := h.route.Fn(c.Request.Context(), kw)
	if err != nil {
		var apiErr *apis.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusOK, gin.H{
				"error":   apiErr.Err,
				"data":    apiErr.Data,
				"message": apiErr.Message,
			})
			return
		}
		h.log.Errorf("%s %s: %v", h.route.Method, h.route.Path, err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	render(c, result)
}

func (h *RequestHandler) bind(c *gin.Context) (Kwargs, *clientError) {
	var kw Kwargs
	req := c.Request

	if h.binding.needsKw() {
		switch req.Method {
		case http.MethodPost:
			params, cerr := parseBody(req)
			if cerr != nil {
				return nil, cerr
			}
			kw = params
		case http.MethodGet:
			if qs := req.URL.RawQuery; qs != "" {
				kw = parseQuery(qs)
			}
		}
	}

	if kw == nil {
		kw = make(Kwargs, len(c.Params))
		for _, p := range c.Params {
			kw[p.Key] = p.Value
		}
	} else {
		if !h.binding.hasVarKw && len(h.binding.namedKw) > 0 {
			// оставляем только именованные параметры
			filtered := make(Kwargs, len(h.binding.namedKw))
			for _, name := range h.binding.namedKw {
				if v, ok := kw[name]; ok {
					filtered[name] = v
				}
			}
			kw = filtered
		}
		for _, p := range c.Params {
			if _, ok := kw[p.Key]; ok {
				h.log.Warnf("Duplicate arg name in named arg and kw args: %s", p.Key)
			}
			kw[p.Key] = p.Value
		}
	}

	if h.binding.requestArg != "" {
		kw[h.binding.requestArg] = req
	}

	for _, name := range h.binding.requiredKw {
		if _, ok := kw[name]; !ok {
			return nil, badRequest("Missing argument: %s", name)
		}
	}
	return kw, nil
}

func parseBody(req *http.Request) (Kwargs, *clientError) {
	contentType := req.Header.Get("Content-Type")
	if contentType == "" {
		return nil, badRequest("Missing Content-Type.")
	}
	ct := strings.ToLower(contentType)

	switch {
	case strings.HasPrefix(ct, "application/json"):
		var params interface{}
		if err := json.NewDecoder(req.Body).Decode(&params); err != nil {
			return nil, badRequest("Invalid JSON body: %v", err)
		}
		obj, ok := params.(map[string]interface{})
		if !ok {
			return nil, badRequest("JSON body must be object.")
		}
		return Kwargs(obj), nil

	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := req.ParseForm(); err != nil {
			return nil, badRequest("Invalid form body: %v", err)
		}
		return firstValues(req.PostForm), nil

	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, badRequest("Invalid multipart body: %v", err)
		}
		kw := firstValues(req.MultipartForm.Value)
		for name, files := range req.MultipartForm.File {
			if _, ok := kw[name]; !ok && len(files) > 0 {
				kw[name] = files[0]
			}
		}
		return kw, nil
	}
	return nil, badRequest("Unsupported Content-Type: %s", contentType)
}

// parseQuery разбирает query string; при повторе ключа берется первое значение
func parseQuery(qs string) Kwargs {
	values, _ := url.ParseQuery(qs)
	return firstValues(values)
}

func firstValues(values map[string][]string) Kwargs {
	kw := make(Kwargs, len(values))
	for k, v := range values {
		if len(v) > 0 {
			kw[k] = v[0]
		}
	}
	return kw
}

func describeArgs(kw Kwargs) string {
	keys := make([]string, 0, len(kw))
	for k := range kw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := kw[k].(*http.Request); ok {
			parts = append(parts, k+"=<request>")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, kw[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
