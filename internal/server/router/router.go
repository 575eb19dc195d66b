package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/metrics"
	"github.com/mamadbah2/feedration/internal/server/handlers"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Catalog *handlers.CatalogHandler
	Rations *handlers.RationHandler
	Records *handlers.RecordHandler
}

// New wires the Gin engine with required routes and middlewares. collector may be nil.
func New(h Handlers, collector *metrics.Collector, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	if collector != nil {
		r.Use(metricsMiddleware(collector))
		r.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	cat := api.Group("/catalog")
	cat.GET("/breeds", h.Catalog.Breeds)
	cat.GET("/feeds", h.Catalog.Feeds)
	cat.POST("/prices/refresh", h.Catalog.RefreshPrices)

	rat := api.Group("/rations")
	rat.POST("/evaluate", h.Rations.Evaluate)
	rat.POST("/advice", h.Rations.Advise)
	rat.POST("/optimize", h.Rations.Optimize)

	rec := api.Group("/records")
	rec.GET("", h.Records.List)
	rec.POST("", h.Records.Create)
	rec.GET("/summary", h.Records.Summary)
	rec.GET("/export", h.Records.Export)
	rec.POST("/import", h.Records.Import)
	rec.DELETE("/:id", h.Records.Delete)

	logger.Info("router initialized")
	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func metricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		collector.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
