package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifleet/pkg/logger"
	"taxifleet/service"
	"taxifleet/storage"
)

// Render executes a page with the values every page expects: the signed-in
// driver as "user", the request query as "query" and the request path.
func Render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = CurrentDriver(c)
	data["query"] = c.Request.URL.Query()
	data["path"] = c.Request.URL.Path
	c.HTML(status, page, data)
}

// Redirect sends a 302 to the named route.
func Redirect(c *gin.Context, routes *Routes, log logger.ILogger, name string, args ...any) {
	target, err := routes.URL(name, args...)
	if err != nil {
		Abort(c, log, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Abort renders the error page with the status that err maps to.
func Abort(c *gin.Context, log logger.ILogger, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Error(err),
		)
	}
	Render(c, status, "error.html", gin.H{
		"status": status,
		"title":  http.StatusText(status),
	})
	c.Abort()
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, service.ErrInvalidPage):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict), errors.Is(err, storage.ErrProtected):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
