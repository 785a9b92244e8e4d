// Package api exposes the digital twin over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/census"
	"github.com/BerylCAtieno/digital-twin-agent/internal/insights"
	"github.com/BerylCAtieno/digital-twin-agent/internal/profiler"
	"github.com/BerylCAtieno/digital-twin-agent/internal/twin"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the services behind the routes. Analyst may be nil when no model
// is configured; its routes then answer 503.
type Deps struct {
	Census     *census.Service
	Comparator *insights.Comparator
	Analyst    *profiler.Analyst
	Twin       *twin.Service
	Gatherer   prometheus.Gatherer
	Logger     *zap.Logger
	// Cache is checked by /health when set.
	Cache HealthChecker
}

type Server struct {
	census     *census.Service
	comparator *insights.Comparator
	analyst    *profiler.Analyst
	twin       *twin.Service
	cache      HealthChecker
	logger     *zap.Logger
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		census:     deps.Census,
		comparator: deps.Comparator,
		analyst:    deps.Analyst,
		twin:       deps.Twin,
		cache:      deps.Cache,
		logger:     logger,
	}
}

// Register mounts the HTTP API on router.
func (s *Server) Register(router gin.IRouter, gatherer prometheus.Gatherer) {
	router.GET("/health", s.handleHealth)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	api.GET("/census", s.handleCensus)
	api.POST("/baseline", s.handleBaseline)
	api.POST("/extract", s.handleExtract)
	api.POST("/validate", s.handleValidate)
	api.POST("/persona", s.handlePersona)
	api.POST("/scenario", s.handleScenario)
	api.POST("/twin", s.handleTwin)

	llm := api.Group("", s.requireAnalyst)
	llm.POST("/insights", s.handleInsights)
	llm.POST("/price-product", s.handlePriceProduct)
	llm.POST("/social-graph", s.handleSocialGraph)
	llm.POST("/day-in-life", s.handleDayInLife)
	llm.POST("/xy-comparison", s.handleXYComparison)
	llm.POST("/correlations", s.handleCorrelations)
}

// NewRouter builds a gin engine with the standard middleware and every route.
func NewRouter(deps Deps) *gin.Engine {
	s := NewServer(deps)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger))
	s.Register(router, deps.Gatherer)
	return router
}

func (s *Server) requireAnalyst(c *gin.Context) {
	if s.analyst == nil {
		abortError(c, http.StatusServiceUnavailable, "Language model is not configured")
		return
	}
	c.Next()
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.cache != nil {
		if err := s.cache.Health(c.Request.Context()); err != nil {
			s.logger.Warn("analysis cache unreachable", zap.Error(err))
			c.String(http.StatusServiceUnavailable, "Cache unavailable")
			return
		}
	}
	c.String(http.StatusOK, "OK")
}
