package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/my", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetMine)
		balances.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetForEmployee)
		balances.POST("", middleware.RBACAuthorize(rbacService, "balance", "allocate"), handler.Allocate)
	}
}
