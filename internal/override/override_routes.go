package override

import (
	"go-roster/internal/middleware"
	"go-roster/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	overrides := r.Group("/overrides")
	overrides.Use(middleware.AuthMiddleware())
	{
		overrides.GET("", middleware.RBACAuthorize(rbacService, "override", "read"), handler.GetActiveByDate)
		overrides.PUT("", middleware.RBACAuthorize(rbacService, "override", "write"), handler.Upsert)
		overrides.DELETE("/:id", middleware.RBACAuthorize(rbacService, "override", "write"), handler.Deactivate)
		overrides.POST("/apply-suggestion", middleware.RBACAuthorize(rbacService, "override", "write"), handler.ApplySuggestion)
	}
}
