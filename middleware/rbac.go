package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/internal/auth"
)

// RequireRole checks that the principal holds one of the allowed roles.
// Superadmin passes wherever admin is allowed.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthenticated"})
			return
		}

		for _, role := range allowedRoles {
			if principal.Role == role {
				c.Next()
				return
			}
			if role == auth.RoleAdmin && principal.Role == auth.RoleSuperAdmin {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "insufficient role"})
	}
}
