package boutique

import (
	"go-roster/internal/middleware"
	"go-roster/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	boutiques := r.Group("/boutiques")
	boutiques.Use(middleware.AuthMiddleware())
	{
		// Listing backs every boutique picker, so it gets the loosest limit.
		boutiques.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "boutique", "read"),
			handler.GetAll,
		)
		boutiques.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "boutique", "read"),
			handler.GetByID,
		)
		boutiques.POST("",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RBACAuthorize(rbacService, "boutique", "create"),
			handler.Create,
		)
		boutiques.PUT("/:id",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RBACAuthorize(rbacService, "boutique", "update"),
			handler.Update,
		)
		boutiques.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "boutique", "delete"),
			handler.Delete,
		)
	}
}
