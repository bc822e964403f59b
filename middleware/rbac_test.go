package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/iedc-carmel/club-management-backend/internal/auth"
)

func rbacRouter(requiredRoles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", func(c *gin.Context) {
		// Simulates AuthMiddleware having run: ?role= sets the principal.
		if role := c.Query("role"); role != "" {
			c.Set("principal", &auth.Principal{UID: "uid-1", Role: role})
		}
	}, RequireRole(requiredRoles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func hitGuarded(r *gin.Engine, role string) int {
	path := "/guarded"
	if role != "" {
		path += "?role=" + role
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireRole(t *testing.T) {
	r := rbacRouter(auth.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, hitGuarded(r, ""))
	assert.Equal(t, http.StatusForbidden, hitGuarded(r, auth.RoleStudent))
	assert.Equal(t, http.StatusOK, hitGuarded(r, auth.RoleAdmin))

	// Superadmin passes wherever admin is allowed.
	assert.Equal(t, http.StatusOK, hitGuarded(r, auth.RoleSuperAdmin))
}

func TestRequireRoleSuperAdminOnly(t *testing.T) {
	r := rbacRouter(auth.RoleSuperAdmin)

	assert.Equal(t, http.StatusForbidden, hitGuarded(r, auth.RoleAdmin))
	assert.Equal(t, http.StatusOK, hitGuarded(r, auth.RoleSuperAdmin))
}
