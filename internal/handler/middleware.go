package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

const callerKey = "caller"

// CallerAuth extracts the caller principal from the X-Caller-Id header set by
// the identity gateway. The service trusts the gateway the way the original
// backend trusts its identity provider.
func CallerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.GetHeader("X-Caller-Id")
		if principal == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "caller identity required (X-Caller-Id)"})
			return
		}
		c.Set(callerKey, principal)
		c.Next()
	}
}

// Caller returns the principal set by CallerAuth.
func Caller(c *gin.Context) string {
	return c.GetString(callerKey)
}

// RequireAdmin gates a route group on the caller's role.
func RequireAdmin(profiles service.ProfileServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := profiles.IsAdmin(c.Request.Context(), Caller(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check role"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}
