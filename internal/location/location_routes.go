package location

import (
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/middleware"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	locations := r.Group("/locations")
	locations.Use(middleware.AuthMiddleware())
	{
		locations.GET("", middleware.RBACAuthorize(rbacService, "locations", "read"), h.GetAll)
		locations.GET("/:id", middleware.RBACAuthorize(rbacService, "locations", "read"), h.GetByID)
		locations.POST("", middleware.RBACAuthorize(rbacService, "locations", "create"), h.Create)
		locations.PUT("/:id", middleware.RBACAuthorize(rbacService, "locations", "update"), h.Update)
	}
}
