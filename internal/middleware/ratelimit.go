package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moodlens/backend/internal/apierror"
	"github.com/moodlens/backend/internal/logger"
)

// RateLimiter counts requests per client IP over a fixed window.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
	name     string
}

// visitor tracks one IP's current window.
type visitor struct {
	windowStart time.Time
	hits        int
}

// NewRateLimiter allows rate requests per window for each IP. The name
// shows up in logs so the general and refresh limiters can be told apart.
func NewRateLimiter(rate int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		name:     name,
	}
	go rl.evictStale()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("rate", rate),
		logger.Duration("window", window),
	)
	return rl
}

// evictStale drops visitors whose window expired long ago so the map
// does not grow with every IP ever seen.
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * rl.window)

		rl.mu.Lock()
		evicted := 0
		for ip, v := range rl.visitors {
			if v.windowStart.Before(cutoff) {
				delete(rl.visitors, ip)
				evicted++
			}
		}
		remaining := len(rl.visitors)
		rl.mu.Unlock()

		if evicted > 0 {
			logger.Default().Debug("rate limiter evicted stale visitors",
				logger.String("name", rl.name),
				logger.Int("evicted", evicted),
				logger.Int("remaining", remaining),
			)
		}
	}
}

// isAllowed records one request from ip and reports whether it fits in
// the current window. The window is fixed from the first request in it,
// so a blocked client recovers once the window rolls over even if it
// keeps sending.
func (rl *RateLimiter) isAllowed(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.windowStart) > rl.window {
		rl.visitors[ip] = &visitor{windowStart: now, hits: 1}
		return true, 1
	}

	v.hits++
	return v.hits <= rl.rate, v.hits
}

// RateLimit is the limiter for the whole API: 300 requests per minute,
// enough for a mood client syncing a full history of day aggregates.
func RateLimit() gin.HandlerFunc {
	return limitWith(NewRateLimiter(300, time.Minute, "general"))
}

// RateLimitRefresh guards forced insight recomputation, which bypasses
// the cache and rescans all history: 10 requests per minute.
func RateLimitRefresh() gin.HandlerFunc {
	return limitWith(NewRateLimiter(10, time.Minute, "refresh"))
}

func limitWith(limiter *RateLimiter) gin.HandlerFunc {
	retryAfter := int(limiter.window / time.Second)
	return func(c *gin.Context) {
		// ClientIP respects X-Forwarded-For behind a reverse proxy.
		ip := c.ClientIP()

		allowed, hits := limiter.isAllowed(ip)
		if !allowed {
			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("hits", hits),
				logger.Int("limit", limiter.rate),
				logger.Duration("window", limiter.window),
			)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			c.Header("X-RateLimit-Remaining", "0")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewRateLimitError(requestID, retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
