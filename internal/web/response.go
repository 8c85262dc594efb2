package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Redirect результат обработчика, который превращается в 302
type Redirect string

const redirectPrefix = "redirect:"

func render(c *gin.Context, result interface{}) {
	switch r := result.(type) {
	case nil:
		c.Status(http.StatusNoContent)
	case Redirect:
		c.Redirect(http.StatusFound, string(r))
	case string:
		if strings.HasPrefix(r, redirectPrefix) {
			c.Redirect(http.StatusFound, r[len(redirectPrefix):])
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(r))
	case []byte:
		c.Data(http.StatusOK, "application/octet-stream", r)
	case int:
		if r >= 100 && r < 600 {
			c.Status(r)
			return
		}
		c.JSON(http.StatusOK, r)
	default:
		c.JSON(http.StatusOK, r)
	}
}
