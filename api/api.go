package api

import (
	"github.com/gin-gonic/gin"

	"taxifleet/api/admin"
	"taxifleet/api/handler"
	"taxifleet/api/web"
	"taxifleet/config"
	"taxifleet/pkg/forms"
	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/service"
	"taxifleet/storage"
)

// New builds the HTTP engine: fleet pages behind login, the admin panel behind
// staff status, plus unauthenticated health and metrics endpoints.
func New(cfg config.Config, svc service.IServiceManager, log logger.ILogger, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	forms.Setup()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(web.RequestLogger(log))
	r.Use(web.Metrics(m))

	routes := web.NewRoutes()
	r.SetHTMLTemplate(web.Templates(routes))

	h := handler.New(cfg, svc, routes, log)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	site := r.Group("/", web.LoadSession(svc.Auth(), log))
	protected := site.Group("/", web.LoginRequired(routes))
	h.Register(site, protected)

	panel := site.Group("/admin", web.LoginRequired(routes), web.StaffRequired())
	admin.New(svc, routes, log).Register(panel)

	r.NoRoute(func(c *gin.Context) {
		web.Abort(c, log, storage.ErrNotFound)
	})
	return r
}
