package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a per-user fixed window limit backed by Redis. With a
// nil client every request passes, so the API stays up when Redis is down.
type RateLimiter struct {
	client    *redis.Client
	maxPerMin int
}

func NewRateLimiter(client *redis.Client, maxPerMinute int) *RateLimiter {
	if maxPerMinute <= 0 {
		maxPerMinute = 120
	}
	return &RateLimiter{client: client, maxPerMin: maxPerMinute}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		id, ok := userID.(uuid.UUID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		if !rl.checkRateLimit(id.String()) {
			nextRequestTime := rl.getNextRequestTime(id.String())
			waitTime := time.Until(nextRequestTime)

			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxPerMin))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(nextRequestTime.Unix(), 10))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
				"details": gin.H{
					"max_requests_per_min": rl.maxPerMin,
					"wait_time_seconds":    int(waitTime.Seconds()),
					"next_request_at":      nextRequestTime.Unix(),
				},
				"message": fmt.Sprintf("Too many requests. Wait %d seconds.", int(waitTime.Seconds())),
			})
			c.Abort()
			return
		}

		remaining := rl.getRemainingRequests(id.String())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxPerMin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

func (rl *RateLimiter) checkRateLimit(userID string) bool {
	if rl.client == nil {
		return true
	}

	key := fmt.Sprintf("api_rate:%s", userID)

	val, err := rl.client.Get(context.Background(), key).Result()
	if err != nil && err != redis.Nil {
		return true // Allow if Redis error
	}

	var currentCount int
	if err == redis.Nil {
		currentCount = 0
	} else {
		currentCount, _ = strconv.Atoi(val)
	}

	if currentCount >= rl.maxPerMin {
		return false
	}

	pipe := rl.client.Pipeline()
	pipe.Incr(context.Background(), key)
	pipe.Expire(context.Background(), key, time.Minute)
	if _, err := pipe.Exec(context.Background()); err != nil {
		fmt.Printf("Rate limiter error: %v\n", err)
	}

	return true
}

func (rl *RateLimiter) getRemainingRequests(userID string) int {
	if rl.client == nil {
		return rl.maxPerMin
	}

	key := fmt.Sprintf("api_rate:%s", userID)
	val, err := rl.client.Get(context.Background(), key).Result()
	if err != nil && err != redis.Nil {
		return rl.maxPerMin
	}

	var currentCount int
	if err == redis.Nil {
		currentCount = 0
	} else {
		currentCount, _ = strconv.Atoi(val)
	}

	remaining := rl.maxPerMin - currentCount
	if remaining < 0 {
		remaining = 0
	}

	return remaining
}

func (rl *RateLimiter) getNextRequestTime(userID string) time.Time {
	if rl.client == nil {
		return time.Now()
	}

	key := fmt.Sprintf("api_rate:%s", userID)
	ttl, err := rl.client.TTL(context.Background(), key).Result()
	if err != nil {
		return time.Now().Add(time.Minute)
	}

	return time.Now().Add(ttl)
}
