package department

import (
	"github.com/gin-gonic/gin"

	"github.com/meharshjain/leave-approval-system/internal/middleware"
	"github.com/meharshjain/leave-approval-system/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetById)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "write"), handler.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", "write"), handler.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "write"), handler.Delete)
	}
}
