package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifleet/api/web"
)

func (h *Handler) Index(c *gin.Context) {
	stats, err := h.svc.Fleet().Stats(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return
	}
	visits, err := h.svc.Auth().Visit(c.Request.Context(), web.CurrentSession(c).ID)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "index.html", gin.H{
		"title":  "Home",
		"stats":  stats,
		"visits": visits,
	})
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.svc.Fleet().Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
