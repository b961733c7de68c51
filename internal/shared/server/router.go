package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "internship-navigator/internal/auth"
	"internship-navigator/internal/internships"
	"internship-navigator/internal/resumes"
	"internship-navigator/internal/shared/config"
	"internship-navigator/internal/shared/metrics"
	"internship-navigator/internal/shared/server/middleware"
	"internship-navigator/internal/shared/server/respond"
	"internship-navigator/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config             config.Config
	AuthHandler        *users.AuthHandler
	ProfileHandler     *users.ProfileHandler
	InternshipsHandler *internships.Handler
	ResumesHandler     *resumes.Handler
	GoogleAuth         *googleauth.GoogleService
	RateLimiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(time.Now)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.AuthRateLimit(limiter, middleware.RateLimitRule{Rate: 5, Burst: 10}),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.InternshipsHandler != nil {
		deps.InternshipsHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
