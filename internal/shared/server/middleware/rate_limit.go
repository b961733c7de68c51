package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"internship-navigator/internal/shared/server/respond"
)

// RateLimitRule describes a token-bucket refill rate (tokens/sec) and burst size.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimiter holds per-principal token buckets.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter constructs a limiter; now may be overridden in tests.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     now,
	}
}

// Allow consumes one token for key, reporting whether the request may proceed
// and, if not, how long until the next token is available.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(float64(rule.Burst), b.tokens+elapsed*rule.Rate)
		b.last = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	deficit := 1 - b.tokens
	wait := time.Duration(deficit / rule.Rate * float64(time.Second))
	return false, wait
}

// AuthRateLimit throttles credential endpoints per client IP to slow brute force.
func AuthRateLimit(limiter *RateLimiter, rule RateLimitRule) gin.HandlerFunc {
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
			c.Next()
			return
		}
		allowed, retryAfter := limiter.Allow(c.ClientIP(), rule)
		if allowed {
			c.Next()
			return
		}
		seconds := int(retryAfter/time.Second) + 1
		c.Header("Retry-After", strconv.Itoa(seconds))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many attempts, slow down", nil)
	}
}
