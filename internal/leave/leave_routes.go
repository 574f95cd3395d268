package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/middleware"
)

// Role gating for approve/reject lives in the workflow service, not
// here: routes only require an authenticated caller so the service is
// the single authorization decision point.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/:id", handler.GetById)
		if rdb != nil {
			leaves.POST("", middleware.Idempotency(rdb), handler.Create)
		} else {
			leaves.POST("", handler.Create)
		}
		leaves.PUT("/:id/approve", handler.Approve)
		leaves.PUT("/:id/reject", handler.Reject)
	}
}
