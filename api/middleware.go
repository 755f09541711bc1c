package api

import (
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

type Authenticator interface {
	Authenticate(username, password string) (domain.Caller, error)
}

// BasicAuth resolves the caller from HTTP basic credentials and aborts with
// 401 when they are missing or wrong.
func BasicAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}
		caller, err := auth.Authenticate(username, password)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="skybook"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
}

func callerFrom(c *gin.Context) (domain.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}
