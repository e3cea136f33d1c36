package app

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/meharshjain/leave-approval-system/internal/auth"
	"github.com/meharshjain/leave-approval-system/internal/balance"
	"github.com/meharshjain/leave-approval-system/internal/department"
	"github.com/meharshjain/leave-approval-system/internal/employee"
	"github.com/meharshjain/leave-approval-system/internal/leaverequest"
	"github.com/meharshjain/leave-approval-system/internal/messaging/kafka"
	"github.com/meharshjain/leave-approval-system/internal/middleware"
	"github.com/meharshjain/leave-approval-system/internal/rbac"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	balanceService := balance.NewService(db, balanceRepo)
	leaveService := leaverequest.NewServiceWithOutbox(db, leaveRepo, employeeRepo, balanceRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leaverequest.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveHandler, rbacService, middleware.Idempotency(rdb))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return nil
}
