package middleware

import (
	"net/http"
	"strings"
	"sync"

	"ctalink-platform/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// perSecond 把每分钟的请求配额换算成限流器的每秒速率
func perSecond(requestsPerMinute int64) rate.Limit {
	return rate.Limit(float64(requestsPerMinute) / 60)
}

// RateLimit 全局限流中间件
func RateLimit(redisClient *redis.Client, limitConfig *config.Limit) gin.HandlerFunc {
	if !limitConfig.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	// 基于内存的限流器，配置按每分钟计，限流器按每秒计
	limiter := rate.NewLimiter(perSecond(limitConfig.Requests), int(limitConfig.Burst))
	var mu sync.Mutex

	return func(c *gin.Context) {
		// 跳过特定路径
		for _, path := range limitConfig.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		mu.Lock()
		defer mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "请求过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
