package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/pkg/redis"
	"adces/pkg/response"
)

// RateLimit throttles requests per client IP using the Redis sliding
// window. Without Redis the limiter is disabled; login brute force is
// the main target so the check fails open on Redis errors.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP() + ":" + c.FullPath()
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed, continuing", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.Error(c, 429, response.CodeRateLimited, "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

// BodyLimit caps the request body size.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, 413, response.CodeValidation, "request body too large")
			c.Abort()
			return
		}
		c.Next()
	}
}
