package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/cache"
	"github.com/dishankgupta/milk-subs-sub005/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the header carrying the client's request key
const IdempotencyKeyHeader = "Idempotency-Key"

// Idempotency rejects replays of mutating requests that carry an
// Idempotency-Key header. The key is scoped to method and path, so
// the same key can be reused across different endpoints. Requests
// without the header pass through unchanged.
//
// Store errors fail open: a broken Redis must not block payment entry.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		scopedKey := c.Request.Method + ":" + c.FullPath() + ":" + key
		first, err := store.MarkProcessed(c.Request.Context(), scopedKey, ttl)
		if err != nil {
			logger.Error("Idempotency check failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !first {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicate,
				"A request with this idempotency key was already accepted",
				GetRequestID(c),
			))
			return
		}

		c.Next()
	}
}
