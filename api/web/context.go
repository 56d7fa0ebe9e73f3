package web

import (
	"github.com/gin-gonic/gin"

	"taxifleet/pkg/models"
)

const (
	driverKey  = "taxifleet.driver"
	sessionKey = "taxifleet.session"
	tokenKey   = "taxifleet.token"
)

// CurrentDriver is the signed-in driver, or nil.
func CurrentDriver(c *gin.Context) *models.Driver {
	v, ok := c.Get(driverKey)
	if !ok {
		return nil
	}
	d, _ := v.(*models.Driver)
	return d
}

func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*models.Session)
	return s
}

// SessionToken is the raw cookie value that authenticated the request.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
