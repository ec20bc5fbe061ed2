package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys set by the identity middleware.
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// RoleAdmin marks callers allowed to manage the room catalog and see all
// bookings.
const RoleAdmin = "admin"

// Identity extracts the caller's identity from headers populated by the
// authenticating proxy in front of this service. Requests without a user id
// are rejected; authentication itself happens upstream.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}
		c.Set(CtxUserID, userID)
		c.Set(CtxUserRole, c.GetHeader("X-User-Role"))
		c.Next()
	}
}

// RequireAdmin stops non-admin callers before any admin-only handler runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}
