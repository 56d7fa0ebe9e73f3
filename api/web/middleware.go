package web

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/session"
	"taxifleet/service"
)

func RequestLogger(log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		}
		if d := CurrentDriver(c); d != nil {
			fields = append(fields, logger.String("user", d.Username))
		}
		log.Info("request", fields...)
	}
}

func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), start)
	}
}

// LoadSession resolves the session cookie, if any, into the signed-in driver.
// A stale or forged cookie is cleared and the request continues anonymously.
func LoadSession(auth service.AuthService, log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		driver, sess, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(driverKey, driver)
			c.Set(sessionKey, sess)
			c.Set(tokenKey, token)
		case errors.Is(err, service.ErrUnauthenticated):
			ClearSessionCookie(c)
		default:
			log.Error("failed to load session", logger.Error(err))
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page, keeping the
// requested location in next.
func LoginRequired(routes *Routes) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentDriver(c) != nil {
			c.Next()
			return
		}
		login := routes.MustURL("login")
		c.Redirect(http.StatusFound, login+"?"+url.Values{"next": {c.Request.URL.RequestURI()}}.Encode())
		c.Abort()
	}
}

// StaffRequired must run after LoginRequired.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if d := CurrentDriver(c); d == nil || !d.IsStaff {
			Render(c, http.StatusForbidden, "error.html", gin.H{
				"status": http.StatusForbidden,
				"title":  http.StatusText(http.StatusForbidden),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
