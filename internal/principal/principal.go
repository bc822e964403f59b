// Package principal holds the authenticated-identity type and the
// gin-context accessors for the principal and the client IP. It sits
// below both middleware and the domain packages so that handlers can
// read request identity without importing middleware (which depends on
// internal/auth, which depends on internal/member).
package principal

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Roles carried in the custom claim and mirrored on the user document.
const (
	RoleStudent    = "student"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// ContextKey is the gin-context key under which AuthMiddleware stores
// the principal.
const ContextKey = "principal"

// Principal is the authenticated identity extracted from a bearer token.
type Principal struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// IsAdmin reports whether the principal may perform admin operations.
// Superadmin implies admin.
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

// GetPrincipal returns the authenticated principal, or nil for
// anonymous requests.
func GetPrincipal(c *gin.Context) *Principal {
	if v, exists := c.Get(ContextKey); exists {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}

// ClientIP resolves the client address from X-Forwarded-For,
// X-Real-Ip or the remote address, in that order.
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// May contain a chain of proxies; the first entry is the client.
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	if xri := c.GetHeader("X-Real-Ip"); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

// GetIPFromContext retrieves the client IP stored by AuditMiddleware.
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return ClientIP(c)
}
