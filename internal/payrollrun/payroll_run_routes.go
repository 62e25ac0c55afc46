package payrollrun

import (
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/middleware"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	runs := r.Group("/payroll/runs")
	runs.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		runs.POST("",
			middleware.RBACAuthorize(rbacService, "payroll", "run"),
			middleware.Idempotency(rdb),
			h.Run,
		)
		runs.POST("/async",
			middleware.RBACAuthorize(rbacService, "payroll", "run"),
			h.RequestRun,
		)
	}
}
