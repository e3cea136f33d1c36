package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/meharshjain/leave-approval-system/internal/shared/response"
)

const (
	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
)

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key on
// POST requests, and holds a short redis lock so two in-flight submissions
// with the same key cannot both commit.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		actorID := c.GetString("employee_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), actorID, idempKey)
		lockKey := cacheKey + ":lock"

		ctx := c.Request.Context()
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Header("Content-Type", "application/json")
			c.String(http.StatusOK, cached)
			c.Abort()
			return
		}

		acquired, _ := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if !acquired {
			response.Error(c, http.StatusConflict, "PROCESSING", "A request with this key is already in progress", nil)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			rdb.Set(ctx, cacheKey, recorder.body.String(), idempotencyTTL)
		}
		rdb.Del(ctx, lockKey)
	}
}
