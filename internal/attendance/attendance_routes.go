package attendance

import (
	"github.com/gin-gonic/gin"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/middleware"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy middleware.RBACService) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("",
			middleware.RBACAuthorize(policy, rbac.ResourceAttendance, rbac.ActionRead),
			handler.GetAll)
		attendances.POST("/clock-in",
			middleware.RBACAuthorize(policy, rbac.ResourceAttendance, rbac.ActionClock),
			handler.ClockIn)
		attendances.POST("/clock-out",
			middleware.RBACAuthorize(policy, rbac.ResourceAttendance, rbac.ActionClock),
			handler.ClockOut)
	}
}
