package roster

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
	roster := r.Group("/roster")
	roster.Use(middleware.AuthMiddleware())
	{
		roster.GET("", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.Resolve)
		roster.GET("/coverage", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.Validate)
		roster.GET("/coverage/suggestion", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.Suggest)
	}
}
