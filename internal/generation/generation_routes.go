package generation

import (
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/middleware"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	scheduling := r.Group("/scheduling/runs")
	scheduling.Use(middleware.AuthMiddleware())
	{
		scheduling.POST("", middleware.RBACAuthorize(rbacService, "scheduling", "run"), h.Run)
	}
}
