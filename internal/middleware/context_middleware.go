package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meharshjain/leave-approval-system/internal/shared/contextutil"
)

// ContextLogger builds a request-scoped logger carrying the request id and
// acting employee, and propagates both through the standard context so the
// service and repo layers never have to know about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		actorID := c.GetString("employee_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("actor_id", actorID),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithActorID(ctx, actorID)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
