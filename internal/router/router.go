package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/carelink/booking-api/internal/handler"
	"github.com/carelink/booking-api/internal/middleware"
)

// Handler is anything that can mount its routes on the API group. Each
// handler receives the auth guard so it can scope its own routes.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup, *middleware.AuthMiddleware)
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	appointmentH Handler
	patientH     Handler
	doctorH      Handler
	hospitalH    Handler
	h            *handler.Handler
	metrics      *routerMetrics
	uploadDir    string
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit     middleware.RateLimiterConfig
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
	UploadDir     string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	appointmentH Handler,
	patientH Handler,
	doctorH Handler,
	hospitalH Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		appointmentH: appointmentH,
		patientH:     patientH,
		doctorH:      doctorH,
		hospitalH:    hospitalH,
		h:            h,
		metrics:      initRouterMetrics(config.MetricsPrefix),
		uploadDir:    config.UploadDir,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	r.appointmentH.RegisterRoutes(api, r.auth)
	r.patientH.RegisterRoutes(api, r.auth)
	r.doctorH.RegisterRoutes(api, r.auth)
	r.hospitalH.RegisterRoutes(api, r.auth)

	// Stored report files are served from the upload directory under the
	// same path the record projections embed in their URLs.
	if r.uploadDir != "" {
		r.engine.Static("/uploads", r.uploadDir)
	}
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
