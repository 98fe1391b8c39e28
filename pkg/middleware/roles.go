package middleware

import (
	"net/http"

	"horeca-board/pkg/access"

	"github.com/gin-gonic/gin"
)

// RequireRoles is the single gate in front of every role-restricted route group.
func RequireRoles(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !access.CanAccess(identity, roles...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
