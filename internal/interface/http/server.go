// Package http implements the public REST API of the evolution service:
// health probes, Prometheus metrics and the evolution report endpoint.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/evolucao-hub/evolucao-academica/internal/application/query"
	"github.com/evolucao-hub/evolucao-academica/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum duration for idle connections.
	IdleTimeout time.Duration

	// AllowedOrigins - allowed origins for CORS ("*" allows any).
	AllowedOrigins []string

	// MetricsEnabled - expose the Prometheus endpoint.
	MetricsEnabled bool

	// MetricsPath - path of the Prometheus endpoint (default: "/metrics").
	MetricsPath string

	// Debug - verbose router output for development.
	Debug bool
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		AllowedOrigins: []string{"*"},
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// HealthCheck is a named probe of one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// Dependencies contains everything the handlers need.
type Dependencies struct {
	// Evolucao computes evolution reports (the only business endpoint).
	Evolucao *query.ComputeEvolutionHandler

	// Checks are the per-dependency health probes (database, cache, registry).
	Checks map[string]HealthCheck

	// Logger for request logging. Nil falls back to the default logger.
	Logger *logger.Logger

	// Version reported by the health endpoint.
	Version string
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server wraps the gin engine and the underlying http.Server.
type Server struct {
	config     Config
	deps       Dependencies
	engine     *gin.Engine
	httpServer *http.Server
	metrics    *Metrics
	log        *logger.Logger
}

// NewServer creates a new HTTP server with the given configuration and
// dependencies. Routes and middleware are wired here; nothing else mutates
// the router afterwards.
func NewServer(config Config, deps Dependencies) *Server {
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}

	s := &Server{
		config:  config,
		deps:    deps,
		metrics: NewMetrics(),
		log:     deps.Logger,
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	s.log = s.log.With(logger.Component("http"))

	if config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(s.recoveryMiddleware())
	engine.Use(s.loggingMiddleware())
	engine.Use(s.metrics.Middleware())
	engine.Use(cors.New(s.corsConfig()))

	s.engine = engine
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         config.Address(),
		Handler:      engine,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Health & Status
	// ─────────────────────────────────────────────────────────────────────────
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/healthz", s.handleHealth) // Kubernetes alias

	// ─────────────────────────────────────────────────────────────────────────
	// API v1
	// ─────────────────────────────────────────────────────────────────────────
	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/alunos/:nusp/evolucao", s.handleEvolucao)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Metrics
	// ─────────────────────────────────────────────────────────────────────────
	if s.config.MetricsEnabled {
		s.engine.GET(s.config.MetricsPath, gin.WrapH(s.metrics.Handler()))
	}
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range s.config.AllowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			return cfg
		}
	}
	cfg.AllowOrigins = s.config.AllowedOrigins
	return cfg
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

// recoveryMiddleware recovers from panics and returns 500.
func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.log.Error("panic recovered",
			logger.Any("panic", recovered),
			logger.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("internal_error", "An unexpected error occurred"))
	})
}

// loggingMiddleware logs every request with method, path, status and latency.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Info("http request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Latency(time.Since(start)),
			logger.String("ip", c.ClientIP()),
		)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", logger.String("address", s.config.Address()))

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the configured bind address.
func (s *Server) Address() string {
	return s.config.Address()
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
