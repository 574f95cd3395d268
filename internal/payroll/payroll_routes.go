package payroll

import (
	"github.com/gin-gonic/gin"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/middleware"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy middleware.RBACService) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("",
			middleware.RBACAuthorize(policy, rbac.ResourcePayroll, rbac.ActionRead),
			handler.GetAll)
		payslips.GET("/:id",
			middleware.RBACAuthorize(policy, rbac.ResourcePayroll, rbac.ActionRead),
			handler.GetById)
	}
}
