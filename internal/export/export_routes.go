package export

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
	exports := r.Group("/exports")
	exports.Use(middleware.AuthMiddleware())
	{
		exports.GET("/roster/weekly", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.WeeklyRoster)
	}
}
