package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/pkg/logger"
	"github.com/TemiKayas/411HW3/pkg/ratelimit"
)

// RateLimitConfig holds rate limit configuration
type RateLimitConfig struct {
	Capacity   int64                     // Maximum number of requests
	RefillRate int64                     // Requests per second
	KeyFunc    func(*gin.Context) string // Function to extract rate limit key
}

// RedisRateLimitConfig Redis 기반 Rate Limit 설정
type RedisRateLimitConfig struct {
	Limiter *ratelimit.RedisLimiter
	Limit   int                       // 윈도우 내 최대 요청 수
	Window  time.Duration             // 윈도우 크기
	KeyFunc func(*gin.Context) string // 키 추출 함수
}

// IPKeyFunc uses the client IP address (the API has no authenticated users)
func IPKeyFunc(c *gin.Context) string {
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

// RateLimit creates an in-memory rate limiting middleware
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	limiter := ratelimit.NewLimiter(config.Capacity, config.RefillRate)

	if config.KeyFunc == nil {
		config.KeyFunc = IPKeyFunc
	}

	return func(c *gin.Context) {
		key := config.KeyFunc(c)

		if !limiter.Allow(key) {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(config.Capacity, 10))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Too many requests. Limit: %d requests per second", config.RefillRate),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(config.Capacity, 10))

		c.Next()
	}
}

// RedisRateLimit Redis 기반 분산 Rate Limiting 미들웨어
func RedisRateLimit(config RedisRateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = IPKeyFunc
	}
	if config.Limit <= 0 {
		config.Limit = 60
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}

	return func(c *gin.Context) {
		key := config.KeyFunc(c)

		ctx := context.Background()
		allowed, info, err := config.Limiter.Allow(ctx, key, config.Limit, config.Window)

		if err != nil {
			// Redis 오류 시 요청 허용 (Fail-open)
			logger.Warn("Redis rate limit check failed", "key", key, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(info.ResetTime).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Too many requests. Limit: %d per %v", config.Limit, config.Window),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Common rate limit configurations

// GeneralAPIRateLimit - 100 requests burst, 10 per second per IP
func GeneralAPIRateLimit() gin.HandlerFunc {
	return RateLimit(RateLimitConfig{
		Capacity:   100,
		RefillRate: 10,
		KeyFunc:    IPKeyFunc,
	})
}

// BattleRateLimit - 10 battles burst, 1 per second per IP
// (each battle hits random.org, keep the pressure down)
func BattleRateLimit() gin.HandlerFunc {
	return RateLimit(RateLimitConfig{
		Capacity:   10,
		RefillRate: 1,
		KeyFunc:    IPKeyFunc,
	})
}

// RedisBattleRateLimit Redis 기반 전투 Rate Limit (30회/분)
func RedisBattleRateLimit(limiter *ratelimit.RedisLimiter) gin.HandlerFunc {
	return RedisRateLimit(RedisRateLimitConfig{
		Limiter: limiter,
		Limit:   30,
		Window:  time.Minute,
		KeyFunc: IPKeyFunc,
	})
}

// RedisGeneralAPIRateLimit Redis 기반 일반 API Rate Limit (600회/분)
func RedisGeneralAPIRateLimit(limiter *ratelimit.RedisLimiter) gin.HandlerFunc {
	return RedisRateLimit(RedisRateLimitConfig{
		Limiter: limiter,
		Limit:   600,
		Window:  time.Minute,
		KeyFunc: IPKeyFunc,
	})
}
