package middleware

import (
	"github.com/gin-gonic/gin"

	pctx "github.com/iedc-carmel/club-management-backend/internal/principal"
)

// AuditMiddleware extracts and stores the client IP for audit logging.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", pctx.ClientIP(c))
		c.Next()
	}
}

// GetIPFromContext retrieves the client IP stored by AuditMiddleware.
func GetIPFromContext(c *gin.Context) string {
	return pctx.GetIPFromContext(c)
}
