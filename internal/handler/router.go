package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mkcore/itam-api/internal/middleware"
	"github.com/mkcore/itam-api/internal/policy"
	"github.com/mkcore/itam-api/internal/service"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Groups      *GroupHandler
	Departments *DepartmentHandler
	Assets      *AssetHandler
	Audit       *AuditHandler
	Metrics     *MetricsHandler
}

// Register attaches all routes under the API prefix. Mutating routes and
// the audit trail are gated on the access policy table.
func Register(r *gin.Engine, prefix string, h Handlers, authSvc *service.AuthService) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.OptionalAuth(authSvc))

	api.POST("/auth/login", h.Auth.Login)

	users := api.Group("/users")
	users.GET("", middleware.Authorize(policy.View(policy.EntityUser)), h.Users.List)
	users.GET("/:id", middleware.Authorize(policy.View(policy.EntityUser)), h.Users.Get)
	users.POST("", middleware.Authorize(policy.Create(policy.EntityUser)), h.Users.Create)
	users.PUT("/:id", middleware.Authorize(policy.Update(policy.EntityUser)), h.Users.Update)
	users.DELETE("/:id", middleware.Authorize(policy.Delete(policy.EntityUser)), h.Users.Delete)

	groups := api.Group("/groups")
	groups.GET("", middleware.Authorize(policy.View(policy.EntityGroup)), h.Groups.List)
	groups.GET("/:id", middleware.Authorize(policy.View(policy.EntityGroup)), h.Groups.Get)
	groups.POST("", middleware.Authorize(policy.Create(policy.EntityGroup)), h.Groups.Create)
	groups.PUT("/:id", middleware.Authorize(policy.Update(policy.EntityGroup)), h.Groups.Update)
	groups.DELETE("/:id", middleware.Authorize(policy.Delete(policy.EntityGroup)), h.Groups.Delete)

	departments := api.Group("/departments")
	departments.GET("", middleware.Authorize(policy.View(policy.EntityDepartment)), h.Departments.List)
	departments.GET("/:id", middleware.Authorize(policy.View(policy.EntityDepartment)), h.Departments.Get)
	departments.POST("", middleware.Authorize(policy.Create(policy.EntityDepartment)), h.Departments.Create)
	departments.PUT("/:id", middleware.Authorize(policy.Update(policy.EntityDepartment)), h.Departments.Update)
	departments.DELETE("/:id", middleware.Authorize(policy.Delete(policy.EntityDepartment)), h.Departments.Delete)

	assets := api.Group("/assets")
	assets.GET("", middleware.Authorize(policy.View(policy.EntityAsset)), h.Assets.List)
	assets.GET("/:id", middleware.Authorize(policy.View(policy.EntityAsset)), h.Assets.Get)
	assets.POST("", middleware.Authorize(policy.Create(policy.EntityAsset)), h.Assets.Create)
	assets.PUT("/:id", middleware.Authorize(policy.Update(policy.EntityAsset)), h.Assets.Update)
	assets.DELETE("/:id", middleware.Authorize(policy.Delete(policy.EntityAsset)), h.Assets.Delete)

	audit := api.Group("/auditlogs")
	audit.GET("", middleware.Authorize(policy.View(policy.EntityAuditLog)), h.Audit.List)
	audit.GET("/export", middleware.Authorize(policy.View(policy.EntityAuditLog)), h.Audit.Export)
}
