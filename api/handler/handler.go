package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxifleet/api/web"
	"taxifleet/config"
	"taxifleet/pkg/forms"
	"taxifleet/pkg/logger"
	"taxifleet/service"
	"taxifleet/storage"
)

type Handler struct {
	cfg    config.Config
	svc    service.IServiceManager
	routes *web.Routes
	log    logger.ILogger
}

func New(cfg config.Config, svc service.IServiceManager, routes *web.Routes, log logger.ILogger) *Handler {
	return &Handler{
		cfg:    cfg,
		svc:    svc,
		routes: routes,
		log:    log,
	}
}

// Register mounts the login pages on public and the fleet pages on protected,
// which must already require a signed-in driver.
func (h *Handler) Register(public, protected *gin.RouterGroup) {
	r := h.routes

	r.Form(public, "login", "/accounts/login/", h.Login)
	r.POST(public, "logout", "/accounts/logout/", h.Logout)

	r.GET(protected, "taxi:index", "/", h.Index)

	r.GET(protected, "taxi:manufacturer-list", "/manufacturers/", h.ManufacturerList)
	r.Form(protected, "taxi:manufacturer-create", "/manufacturers/create/", h.ManufacturerCreate)
	r.GET(protected, "taxi:manufacturer-detail", "/manufacturers/:pk/", h.ManufacturerDetail)
	r.Form(protected, "taxi:manufacturer-update", "/manufacturers/:pk/update/", h.ManufacturerUpdate)
	r.Form(protected, "taxi:manufacturer-delete", "/manufacturers/:pk/delete/", h.ManufacturerDelete)

	r.GET(protected, "taxi:car-list", "/cars/", h.CarList)
	r.Form(protected, "taxi:car-create", "/cars/create/", h.CarCreate)
	r.GET(protected, "taxi:car-detail", "/cars/:pk/", h.CarDetail)
	r.Form(protected, "taxi:car-update", "/cars/:pk/update/", h.CarUpdate)
	r.Form(protected, "taxi:car-delete", "/cars/:pk/delete/", h.CarDelete)
	r.POST(protected, "taxi:toggle-car-assign", "/cars/:pk/toggle-assign/", h.CarToggleAssign)

	r.GET(protected, "taxi:driver-list", "/drivers/", h.DriverList)
	r.Form(protected, "taxi:driver-create", "/drivers/create/", h.DriverCreate)
	r.GET(protected, "taxi:driver-detail", "/drivers/:pk/", h.DriverDetail)
	r.Form(protected, "taxi:driver-update", "/drivers/:pk/update/", h.DriverUpdate)
	r.Form(protected, "taxi:driver-delete", "/drivers/:pk/delete/", h.DriverDelete)
}

func (h *Handler) render(c *gin.Context, page string, data gin.H) {
	web.Render(c, http.StatusOK, page, data)
}

func (h *Handler) redirect(c *gin.Context, name string, args ...any) {
	web.Redirect(c, h.routes, h.log, name, args...)
}

func (h *Handler) abort(c *gin.Context, err error) {
	web.Abort(c, h.log, err)
}

// pk reads the :pk path parameter. A malformed id is answered with 404.
func (h *Handler) pk(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil || id <= 0 {
		h.abort(c, storage.ErrNotFound)
		return 0, false
	}
	return id, true
}

func isPost(c *gin.Context) bool {
	return c.Request.Method == http.MethodPost
}

// bindQuery decodes the query string into search. A value that does not
// decode leaves the search empty and is logged at debug.
func (h *Handler) bindQuery(c *gin.Context, search any) {
	if err := c.ShouldBindQuery(search); err != nil {
		h.log.Debug("search query not decoded",
			logger.String("query", c.Request.URL.RawQuery),
			logger.Error(err),
		)
	}
}

// bind decodes the submitted body into form. Undecodable input is a 400.
func (h *Handler) bind(c *gin.Context, form any) bool {
	if err := c.Request.ParseForm(); err != nil {
		h.badRequest(c, err)
		return false
	}
	if err := forms.Bind(c.Request.PostForm, form); err != nil {
		h.badRequest(c, err)
		return false
	}
	return true
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.log.Warning("malformed form", logger.String("path", c.Request.URL.Path), logger.Error(err))
	web.Render(c, http.StatusBadRequest, "error.html", gin.H{
		"status": http.StatusBadRequest,
		"title":  http.StatusText(http.StatusBadRequest),
	})
	c.Abort()
}
