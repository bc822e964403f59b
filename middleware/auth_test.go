package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iedc-carmel/club-management-backend/internal/auth"
)

func mintToken(t *testing.T, provider *auth.DevTokenProvider, uid, role string) string {
	t.Helper()
	token, err := provider.MintCustomToken(context.Background(), uid, map[string]interface{}{"role": role})
	require.NoError(t, err)
	return token
}

func authRouter(provider *auth.DevTokenProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(provider), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": GetPrincipal(c).UID})
	})
	r.GET("/maybe", OptionalAuth(provider), func(c *gin.Context) {
		if p := GetPrincipal(c); p != nil {
			c.JSON(http.StatusOK, gin.H{"uid": p.UID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": "anonymous"})
	})
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	provider := auth.NewDevTokenProvider("test-secret")
	r := authRouter(provider)

	t.Run("valid token", func(t *testing.T) {
		token := mintToken(t, provider, "uid-1", auth.RoleStudent)
		w := get(r, "/me", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "uid-1")
	})

	t.Run("missing header", func(t *testing.T) {
		w := get(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := get(r, "/me", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get(r, "/me", "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewDevTokenProvider("another-secret")
		token := mintToken(t, other, "uid-1", auth.RoleStudent)
		w := get(r, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuthDegradesToAnonymous(t *testing.T) {
	provider := auth.NewDevTokenProvider("test-secret")
	r := authRouter(provider)

	t.Run("no token", func(t *testing.T) {
		w := get(r, "/maybe", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("invalid token still succeeds", func(t *testing.T) {
		w := get(r, "/maybe", "Bearer junk")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("valid token attaches principal", func(t *testing.T) {
		token := mintToken(t, provider, "uid-7", auth.RoleStudent)
		w := get(r, "/maybe", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "uid-7")
	})
}

func TestAuditMiddlewareClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ip", AuditMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, GetIPFromContext(c))
	})

	t.Run("forwarded chain uses first hop", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "203.0.113.7", w.Body.String())
	})

	t.Run("real ip header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.Header.Set("X-Real-Ip", "198.51.100.4")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "198.51.100.4", w.Body.String())
	})

	t.Run("falls back to remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "192.0.2.9:51234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "192.0.2.9", w.Body.String())
	})
}
