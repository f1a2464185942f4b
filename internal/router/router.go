package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/handler"
	"github.com/jwalitptl/quickmed-api/internal/handler/health"
	"github.com/jwalitptl/quickmed-api/internal/handler/prometheus"
	"github.com/jwalitptl/quickmed-api/internal/middleware"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	authH     handler.Registrar
	resources []handler.Registrar
	health    *health.Handler
	metrics   *prometheus.Handler
	config    RouterConfig

	limiter     *middleware.RateLimiter
	authLimiter *middleware.RateLimiter
}

type RouterConfig struct {
	Mode           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	PublicMaxAge   int
	CORSConfig     middleware.CORSConfig
	Validation     middleware.ValidationConfig

	// nil disables rate limiting
	RateLimit     *middleware.RateLimiterConfig
	AuthRateLimit *middleware.RateLimiterConfig
}

// NewRouter wires the global middleware chain. authH gets the stricter
// limiter; resources are mounted on the shared public and protected groups.
func NewRouter(
	auth *middleware.AuthMiddleware,
	authH handler.Registrar,
	resources []handler.Registrar,
	healthH *health.Handler,
	metrics *prometheus.Handler,
	config RouterConfig,
) (*Router, error) {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if err := middleware.RegisterValidators(config.Validation); err != nil {
		return nil, err
	}

	engine := gin.New()

	r := &Router{
		engine:    engine,
		auth:      auth,
		authH:     authH,
		resources: resources,
		health:    healthH,
		metrics:   metrics,
		config:    config,
	}
	if config.RateLimit != nil {
		r.limiter = middleware.NewRateLimiter(*config.RateLimit)
	}
	if config.AuthRateLimit != nil {
		r.authLimiter = middleware.NewRateLimiter(*config.AuthRateLimit)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		metrics.Middleware(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.ErrorHandler(config.Validation),
		middleware.Timeout(config.RequestTimeout),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.NewErrorResponse("Route not found"))
	})

	return r, nil
}

// Setup mounts all routes. Health and metrics stay outside /api so probes
// bypass rate limiting.
func (r *Router) Setup() {
	r.health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api")
	if r.config.MaxBodyBytes > 0 {
		api.Use(middleware.SizeLimit(r.config.MaxBodyBytes))
	}

	// auth endpoints: stricter limit, never cached
	authGroup := api.Group("", middleware.NoStore())
	if r.authLimiter != nil {
		authGroup.Use(r.authLimiter.RateLimit())
	}
	r.authH.RegisterRoutes(authGroup, authGroup.Group("", r.auth.Authenticate()))

	general := api.Group("")
	if r.limiter != nil {
		general.Use(r.limiter.RateLimit())
	}
	public := general.Group("", middleware.Cache(middleware.PublicCacheConfig(r.config.PublicMaxAge)))
	protected := general.Group("", middleware.NoStore(), r.auth.Authenticate())

	for _, h := range r.resources {
		h.RegisterRoutes(public, protected)
	}
}

// Limiters returns the configured rate limiters so the caller can run
// their cleanup loops.
func (r *Router) Limiters() []*middleware.RateLimiter {
	var out []*middleware.RateLimiter
	for _, l := range []*middleware.RateLimiter{r.limiter, r.authLimiter} {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
