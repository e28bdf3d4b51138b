package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"dicegame_config/internal/infrastructure/configloader"
	"dicegame_config/internal/pkg/metrics"
)

// RouterDeps bundles what SetupRouter needs besides the handler.
type RouterDeps struct {
	Config   *configloader.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// SetupRouter configures and returns the Gin engine.
func SetupRouter(handler *ContractConfigHandler, deps RouterDeps) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(deps.Config.API.AllowedOrigins) == 1 && deps.Config.API.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.Config.API.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(deps.Logger))
	router.Use(gin.Recovery())
	if deps.Metrics != nil {
		router.Use(MetricsMiddleware(deps.Metrics))
	}
	router.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(deps.Config.API.RateLimitRPS), deps.Config.API.RateLimitBurst)))

	router.GET("/health", handler.HealthHandler)
	router.GET("/contract-config.js", handler.GetScriptHandler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/contract-config", handler.GetContractConfigHandler)
		v1.GET("/contract-config/render", handler.GetRenderingHandler)
		v1.GET("/contract-config/:group", handler.GetGroupHandler)
		v1.GET("/gas/:operation", handler.GetGasLimitHandler)
		v1.GET("/verification", handler.GetVerificationHandler)
	}

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	return router
}

// ZapLoggerMiddleware logs every request through zap.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// MetricsMiddleware records request counts and latency per route template.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// RateLimitMiddleware rejects requests with 429 once the token bucket is empty.
func RateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, APIErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
