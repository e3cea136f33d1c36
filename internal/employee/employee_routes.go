package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/directory", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetDirectory)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetById)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "write"), handler.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "write"), handler.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "write"), handler.Delete)
	}
}
