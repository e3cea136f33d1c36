package app

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meharshjain/leave-approval-system/internal/middleware"
	"github.com/meharshjain/leave-approval-system/internal/shared/connection"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimit(middleware.NewIPRateLimiter(rate.Every(time.Second/20), 40)))

	return registerModules(router, sqlDB, gormDB, redisClient)
}
