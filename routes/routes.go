package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/config"
	"github.com/iedc-carmel/club-management-backend/internal/auditlog"
	"github.com/iedc-carmel/club-management-backend/internal/auth"
	"github.com/iedc-carmel/club-management-backend/internal/event"
	"github.com/iedc-carmel/club-management-backend/internal/member"
	"github.com/iedc-carmel/club-management-backend/internal/reports"
	"github.com/iedc-carmel/club-management-backend/middleware"

	_ "github.com/iedc-carmel/club-management-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies carries the constructed handlers and the token verifier.
// Everything is injected; the router owns no state of its own.
type Dependencies struct {
	Verifier auth.TokenVerifier

	Auth     *auth.Handler
	Members  *member.Handler
	Events   *event.Handler
	Reports  *reports.Handler
	AuditLog *auditlog.Handler
}

func Setup(r *gin.Engine, cfg *config.Config, deps *Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg))
	api.Use(middleware.AuditMiddleware())

	// ========== Public ==========
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/members/apply", deps.Members.Apply)
	api.GET("/events/public", deps.Events.ListPublic)
	api.GET("/events/:id", deps.Events.Get)

	// Registration accepts both signed-in and anonymous submissions, so
	// the token is optional here.
	api.POST("/events/:id/register",
		middleware.OptionalAuth(deps.Verifier),
		deps.Events.SubmitRegistration)

	// ========== Authenticated ==========
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.Verifier))

	// First-admin bootstrap: any signed-in caller, no role gate.
	protected.POST("/admin/users/grant-admin", deps.Members.GrantAdmin)

	// Any signed-in admin or superadmin manages events and members.
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/events", deps.Events.Create)
		admin.GET("/events", deps.Events.ListAdmin)
		admin.GET("/events/:id", deps.Events.Get)
		admin.PUT("/events/:id", deps.Events.Update)
		admin.DELETE("/events/:id", deps.Events.Delete)

		admin.GET("/events/:id/registrations", deps.Events.ListRegistrations)
		admin.GET("/events/:id/registrations/export", deps.Reports.ExportRegistrations)
		admin.POST("/events/:id/registrations/:rid", deps.Events.SetRegistrationStatus)
		admin.DELETE("/events/:id/registrations/:rid", deps.Events.DeleteRegistration)

		admin.GET("/members", deps.Members.List)
		admin.POST("/members/:id/approve", deps.Members.Approve)
		admin.POST("/members/:id/role", deps.Members.SetRole)
		admin.DELETE("/members/:id", deps.Members.Delete)
	}

	// ========== SuperAdmin ==========
	super := protected.Group("/admin")
	super.Use(middleware.RequireRole(auth.RoleSuperAdmin))
	{
		super.GET("/auditlogs", deps.AuditLog.List)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "endpoint not found"})
	})
}
