package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAllowRefillsOverTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow("ip", rule); !ok {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}
	ok, wait := limiter.Allow("ip", rule)
	if ok {
		t.Fatalf("expected denial after burst exhausted")
	}
	if wait <= 0 {
		t.Fatalf("expected positive retry hint, got %v", wait)
	}

	now = now.Add(1500 * time.Millisecond)
	if ok, _ := limiter.Allow("ip", rule); !ok {
		t.Fatalf("expected token after refill")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	limiter := NewRateLimiter(nil)
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatalf("first request for key a should pass")
	}
	if ok, _ := limiter.Allow("b", rule); !ok {
		t.Fatalf("key b has its own bucket")
	}
	if ok, _ := limiter.Allow("a", rule); ok {
		t.Fatalf("key a bucket should be empty")
	}
}

func TestAuthRateLimitOnlyCoversAuthPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(func() time.Time { return time.Unix(1700000000, 0) })

	r := gin.New()
	r.Use(AuthRateLimit(limiter, RateLimitRule{Rate: 1, Burst: 1}))
	r.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/internships", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Burst of one: second login attempt from the same IP is throttled.
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("attempt %d: expected %d, got %d", i, want, resp.Code)
		}
		if want == http.StatusTooManyRequests && resp.Header().Get("Retry-After") == "" {
			t.Fatalf("expected Retry-After header on throttled response")
		}
	}

	// Non-auth paths are never throttled by this middleware.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/internships", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}
}
