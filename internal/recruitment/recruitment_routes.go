package recruitment

import (
	"github.com/gin-gonic/gin"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/middleware"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy middleware.RBACService) {
	candidates := r.Group("/candidates")
	candidates.Use(middleware.AuthMiddleware())
	{
		candidates.GET("",
			middleware.RBACAuthorize(policy, rbac.ResourceRecruitment, rbac.ActionRead),
			handler.GetAll)
		candidates.GET("/:id",
			middleware.RBACAuthorize(policy, rbac.ResourceRecruitment, rbac.ActionRead),
			handler.GetById)
		candidates.POST("",
			middleware.RBACAuthorize(policy, rbac.ResourceRecruitment, rbac.ActionManage),
			handler.Create)
		candidates.PUT("/:id",
			middleware.RBACAuthorize(policy, rbac.ResourceRecruitment, rbac.ActionManage),
			handler.Update)
		candidates.DELETE("/:id",
			middleware.RBACAuthorize(policy, rbac.ResourceRecruitment, rbac.ActionManage),
			handler.Delete)
	}
}
