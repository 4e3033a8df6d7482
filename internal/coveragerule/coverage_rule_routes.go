package coveragerule

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
	rules := r.Group("/coverage-rules")
	rules.Use(middleware.AuthMiddleware())
	{
		rules.GET("", middleware.RBACAuthorize(rbacService, "coverage_rule", "read"), handler.List)
		rules.PUT("", middleware.RBACAuthorize(rbacService, "coverage_rule", "write"), handler.Upsert)
	}
}
