package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pptq-absensi/pkg/redis"
	"pptq-absensi/pkg/response"
)

// IdleTimeout ends a login after ttl without authenticated requests. Every
// request that passes slides the window forward. Must run after JWTAuth.
// Without Redis the check is skipped.
func IdleTimeout(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		jti := c.GetString(CtxTokenJTI)
		alive, err := rdb.RefreshIdle(c.Request.Context(), jti, ttl)
		if err != nil {
			logger.Warn("idle check failed, letting request through", zap.Error(err))
			c.Next()
			return
		}
		if !alive {
			response.Unauthorized(c, 10002, "session expired")
			c.Abort()
			return
		}

		c.Next()
	}
}
