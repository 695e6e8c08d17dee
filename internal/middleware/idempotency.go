package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	ContextIdempotencyCacheKey = "idempotency_cache_key"
	ContextIdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL  = 30 * time.Second
	IdempotencyCacheTTL = 24 * time.Hour
)

// Idempotency replays the stored result of a POST carrying an Idempotency-Key
// and rejects a duplicate while the first one is still running. The handler
// stores the result and releases the lock via FinishIdempotent.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		principalID := c.GetString(ContextPrincipalID)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), principalID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Named("middleware.idempotency").Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "Your request is still being processed, please wait.", nil)
			c.Abort()
			return
		}

		c.Set(ContextIdempotencyCacheKey, cacheKey)
		c.Set(ContextIdempotencyLockKey, lockKey)

		c.Next()
	}
}

// FinishIdempotent caches result (when non-nil) and releases the lock.
func FinishIdempotent(c *gin.Context, rdb *redis.Client, result any) {
	if rdb == nil {
		return
	}
	ctx := c.Request.Context()

	if cacheKey := c.GetString(ContextIdempotencyCacheKey); cacheKey != "" && result != nil {
		if payload, err := json.Marshal(result); err == nil {
			rdb.Set(ctx, cacheKey, payload, IdempotencyCacheTTL)
		}
	}
	if lockKey := c.GetString(ContextIdempotencyLockKey); lockKey != "" {
		rdb.Del(ctx, lockKey)
	}
}
