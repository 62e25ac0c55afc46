package occurrence

import (
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/middleware"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	occurrences := r.Group("/occurrences")
	occurrences.Use(middleware.AuthMiddleware())
	{
		occurrences.GET("", middleware.RBACAuthorize(rbacService, "occurrences", "read"), h.GetAll)
		occurrences.GET("/:id", middleware.RBACAuthorize(rbacService, "occurrences", "read"), h.GetByID)
		occurrences.POST("", middleware.RBACAuthorize(rbacService, "occurrences", "create"), h.Create)
		occurrences.POST("/:id/complete", middleware.RBACAuthorize(rbacService, "occurrences", "complete"), h.Complete)
	}
}
