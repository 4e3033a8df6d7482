package team

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
	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	{
		teams.POST("/change", middleware.RBACAuthorize(rbacService, "team", "change"), handler.ChangeTeam)
		teams.GET("/timeline/:id", middleware.RBACAuthorize(rbacService, "team", "read"), handler.GetTimeline)
	}
}
