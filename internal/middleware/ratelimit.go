package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

// RateLimiterConfig allows Requests per Window for each client IP, with
// the whole allowance available as a burst.
type RateLimiterConfig struct {
	Requests int
	Window   time.Duration
	Message  string
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   RateLimiterConfig
	limit    rate.Limit
	now      func() time.Time
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Message == "" {
		config.Message = "Too many requests, please try again later"
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		config:   config,
		limit:    rate.Limit(float64(config.Requests) / config.Window.Seconds()),
		now:      time.Now,
	}
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.config.Requests)}
		rl.visitors[ip] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

// Cleanup forgets clients idle for longer than one window, every window,
// until ctx is done.
func (rl *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.config.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict()
		}
	}
}

func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.config.Window)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	limit := strconv.Itoa(rl.config.Requests)

	return func(c *gin.Context) {
		lim := rl.get(c.ClientIP())
		c.Header("X-RateLimit-Limit", limit)

		if !lim.AllowN(rl.now(), 1) {
			c.Header("Retry-After", strconv.Itoa(int(rl.config.Window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.NewErrorResponse(rl.config.Message))
			return
		}

		remaining := int(lim.TokensAt(rl.now()))
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
