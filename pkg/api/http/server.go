package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aescanero/tlregion/internal/application/catalog"
	"github.com/aescanero/tlregion/internal/application/monitor"
	"github.com/aescanero/tlregion/internal/i18n"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Catalog is the dataset service behind the API
type Catalog interface {
	Raw(ctx context.Context, kind catalog.Kind) ([]byte, error)
	District(ctx context.Context, id string) (catalog.Record, error)
	Search(ctx context.Context, query string) ([]catalog.Record, error)
	Stats(ctx context.Context) (*catalog.Stats, error)
}

// HealthReporter reports the result of the latest dataset check
type HealthReporter interface {
	GetStatus() monitor.Status
}

// RequestMetrics records served requests
type RequestMetrics interface {
	RecordRequest(route string, status int, duration time.Duration)
}

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	server   *http.Server
	catalog  Catalog
	health   HealthReporter
	messages *i18n.Bundle
	metrics  RequestMetrics
	static   http.FileSystem
	strict   bool
	logger   *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port         int
	Catalog      Catalog
	Health       HealthReporter
	Messages     *i18n.Bundle
	Metrics      RequestMetrics
	StaticDir    string
	StrictStatus bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		catalog:  cfg.Catalog,
		health:   cfg.Health,
		messages: cfg.Messages,
		metrics:  cfg.Metrics,
		static:   http.Dir(cfg.StaticDir),
		strict:   cfg.StrictStatus,
		logger:   cfg.Logger,
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))
	router.Use(requestMetrics(cfg.Metrics))
	router.Use(gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic))
	router.Use(corsMiddleware())
	router.Use(languageMiddleware(cfg.Messages))
	s.router = router

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/districts", s.handleDataset(catalog.KindDistrict))
		api.GET("/districts/:id", s.handleGetDistrict)
		api.GET("/subdistricts", s.handleDataset(catalog.KindSubdistrict))
		api.GET("/villages", s.handleDataset(catalog.KindVillage))
		api.GET("/search", s.handleSearch)
		api.GET("/stats", s.handleStats)
	}

	// Prefix-matched API paths, unknown API paths and static files
	s.router.NoRoute(s.handleNoRoute)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
