package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/middleware"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy middleware.RBACService) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("",
			middleware.RBACAuthorize(policy, rbac.ResourceEmployee, rbac.ActionReadAll),
			handler.GetAll)
		employees.GET("/options",
			middleware.RBACAuthorize(policy, rbac.ResourceEmployee, rbac.ActionReadAll),
			handler.GetOptions)
		employees.GET("/:id",
			middleware.RBACAuthorize(policy, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetById)
		employees.POST("",
			middleware.RBACAuthorize(policy, rbac.ResourceEmployee, rbac.ActionCreate),
			handler.Create)
		employees.PUT("/:id",
			middleware.RBACAuthorize(policy, rbac.ResourceEmployee, rbac.ActionUpdate),
			handler.Update)
		employees.DELETE("/:id",
			middleware.RBACAuthorize(policy, rbac.ResourceEmployee, rbac.ActionDelete),
			handler.Delete)
	}
}
