package schedulelock

import (
	"go-roster/internal/middleware"
	"go-roster/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Day lock actions use the "lock_day" action so boutique managers can hold
// them, while week approval and week locks stay on the admin-only actions.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	schedule := r.Group("/schedule")
	schedule.Use(middleware.AuthMiddleware())
	{
		schedule.GET("/weeks/status", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetWeekStatus)
		schedule.GET("/days/status", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetDayStatus)

		schedule.POST("/weeks/approve", middleware.RBACAuthorize(rbacService, "schedule", "approve"), handler.ApproveWeek)
		schedule.POST("/weeks/unapprove", middleware.RBACAuthorize(rbacService, "schedule", "approve"), handler.UnapproveWeek)

		schedule.POST("/weeks/lock", middleware.RBACAuthorize(rbacService, "schedule", "lock_week"), handler.LockWeek)
		schedule.POST("/weeks/unlock", middleware.RBACAuthorize(rbacService, "schedule", "lock_week"), handler.UnlockWeek)

		schedule.POST("/days/lock", middleware.RBACAuthorize(rbacService, "schedule", "lock_day"), handler.LockDay)
		schedule.POST("/days/unlock", middleware.RBACAuthorize(rbacService, "schedule", "lock_day"), handler.UnlockDay)
	}
}
