package employeerate

import (
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/middleware"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	rates := r.Group("/rates")
	rates.Use(middleware.AuthMiddleware())
	{
		rates.GET("", middleware.RBACAuthorize(rbacService, "rates", "read"), h.GetAll)
		rates.GET("/:id", middleware.RBACAuthorize(rbacService, "rates", "read"), h.GetByID)
		rates.POST("", middleware.RBACAuthorize(rbacService, "rates", "create"), h.Create)
		rates.PUT("/:id", middleware.RBACAuthorize(rbacService, "rates", "update"), h.Update)
		rates.DELETE("/:id", middleware.RBACAuthorize(rbacService, "rates", "delete"), h.Delete)
	}
}
