package ledger

import (
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/middleware"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	ledgers := r.Group("/ledgers")
	ledgers.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		ledgers.GET("", middleware.RBACAuthorize(rbacService, "ledger", "read"), h.GetAllByPeriod)
		ledgers.GET("/:worker_id/:period_id", middleware.RBACAuthorize(rbacService, "ledger", "read"), h.GetByWorkerAndPeriod)
	}

	adjustments := r.Group("/payroll/adjustments")
	adjustments.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		adjustments.POST("",
			middleware.RBACAuthorize(rbacService, "ledger", "adjust"),
			middleware.Idempotency(rdb),
			h.AddAdjustment,
		)
	}
}
