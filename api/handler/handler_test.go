package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"taxifleet/api/web"
	"taxifleet/config"
	"taxifleet/pkg/forms"
	"taxifleet/pkg/logger"
)

func newTestContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestBindQueryLogsUndecodableValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := New(config.Config{}, nil, web.NewRoutes(), logger.NewFromZap(zap.New(core)))

	var paging struct {
		Page int `form:"page"`
	}
	h.bindQuery(newTestContext("/drivers/?page=abc"), &paging)

	assert.Zero(t, paging.Page)
	entries := logs.FilterMessage("search query not decoded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "page=abc", entries[0].ContextMap()["query"])
}

func TestBindQueryDecodesSearch(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := New(config.Config{}, nil, web.NewRoutes(), logger.NewFromZap(zap.New(core)))

	var search forms.DriverSearch
	h.bindQuery(newTestContext("/drivers/?username=+bob+"), &search)

	assert.Equal(t, "bob", search.Query())
	assert.Zero(t, logs.Len())
}
