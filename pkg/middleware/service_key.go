package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ServiceKeyHeader = "X-Service-Key"

// ServiceKeyMiddleware guards internal endpoints that other services call with the privileged key.
func ServiceKeyMiddleware(serviceKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(ServiceKeyHeader)
		if serviceKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(serviceKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid service key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
