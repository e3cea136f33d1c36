package leaverequest

import (
	"github.com/gin-gonic/gin"

	"github.com/meharshjain/leave-approval-system/internal/middleware"
	"github.com/meharshjain/leave-approval-system/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	leave := r.Group("/leave")
	leave.Use(middleware.AuthMiddleware())
	{
		leave.POST("/request", middleware.RBACAuthorize(rbacService, "leave", "create"), idempotency, handler.Submit)
		leave.PUT("/approve/:id", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Decide)
		leave.PUT("/cancel/:id", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
		leave.GET("/my", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetMine)
		leave.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.GetPending)
		leave.GET("/records", middleware.RBACAuthorize(rbacService, "leave", "records"), handler.GetRecords)
	}
}
