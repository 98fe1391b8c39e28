package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextTokenID   = "token_id"
	ContextTokenExp  = "token_expires_at"
	ContextIdentity  = "identity"
	bearerPrefix     = "Bearer "
	websocketTokenQS = "token"
)

// AuthMiddleware validates the bearer token, checks it against the revocation list and resolves the
// caller's identity from the profile store. A subject without a profile is signed out.
func AuthMiddleware(jwtService *jwt.Service, resolver access.Resolver, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		if revoker != nil {
			revoked, err := revoker.IsRevoked(ctx, claims.ID)
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session check failed"})
				c.Abort()
				return
			}
			if revoked {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has ended", "signed_out": true})
				c.Abort()
				return
			}
		}

		identity, err := resolver.Resolve(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, access.ErrProfileNotFound) || errors.Is(err, access.ErrUnauthenticated) {
				if revoker != nil {
					_ = revoker.Revoke(ctx, claims.ID, expiresAt(claims))
				}
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found", "signed_out": true})
				c.Abort()
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve identity"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUserRole, string(identity.Role))
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextTokenExp, expiresAt(claims))
		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity resolved by AuthMiddleware, or nil.
func CurrentIdentity(c *gin.Context) *access.Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*access.Identity)
	return id
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	}
	// Browsers cannot set headers on a websocket handshake.
	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return c.Query(websocketTokenQS)
	}
	return ""
}

func expiresAt(claims *jwt.Claims) time.Time {
	if claims.ExpiresAt == nil {
		return time.Now().Add(24 * time.Hour)
	}
	return claims.ExpiresAt.Time
}
