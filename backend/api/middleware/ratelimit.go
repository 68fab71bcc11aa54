package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"study-hub/backend/common"

	"github.com/gin-gonic/gin"
)

// Fixed one-minute windows: redis INCR+EXPIRE when redis is enabled, an
// in-process counter map otherwise.

type memoryLimiter struct {
	mu      sync.Mutex
	counts  map[string]int
	resetAt time.Time
}

func (m *memoryLimiter) allow(key string, limit int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if now.After(m.resetAt) {
		m.counts = map[string]int{}
		m.resetAt = now.Add(time.Minute)
	}
	m.counts[key]++
	return m.counts[key] <= limit
}

var memLimiter = &memoryLimiter{counts: map[string]int{}, resetAt: time.Now().Add(time.Minute)}

func redisAllow(c *gin.Context, key string, limit int) bool {
	count, err := common.RDB.Incr(c, key).Result()
	if err != nil {
		// Redis down should not take the API with it.
		return true
	}
	if count == 1 {
		common.RDB.Expire(c, key, time.Minute)
	}
	return count <= int64(limit)
}

func rateLimit(scope string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())
		allowed := false
		if common.RedisEnabled {
			allowed = redisAllow(c, key, limit)
		} else {
			allowed = memLimiter.allow(key, limit)
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}

func GlobalAPIRateLimit() gin.HandlerFunc {
	return rateLimit("api", common.RateLimitRPM)
}

// CriticalRateLimit guards the credential endpoints with a tighter budget.
func CriticalRateLimit() gin.HandlerFunc {
	return rateLimit("critical", common.CriticalLimit)
}
