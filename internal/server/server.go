// Package server exposes the engine's six operations over HTTP. It is
// host wiring around the core: the engine has no knowledge of this
// layer, and the persistence sink is invoked here after engine calls
// return.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bookvault/orderflow/internal/engine"
	"github.com/bookvault/orderflow/internal/persistence"
)

// Server represents the API server
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	logger  *zap.Logger
	engine  *engine.Engine
	sink    persistence.Sink
}

// NewServer creates a new API server around an engine instance and a
// persistence sink.
func NewServer(logger *zap.Logger, eng *engine.Engine, sink persistence.Sink) *Server {
	if sink == nil {
		sink = persistence.NopSink{}
	}
	server := &Server{
		logger: logger,
		engine: eng,
		sink:   sink,
	}

	router := gin.New()

	// Add middleware
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server.router = router
	server.registerRoutes()
	server.httpSrv = &http.Server{Handler: router}
	return server
}

// Start starts the API server and blocks until it exits. After a
// graceful Shutdown, Start returns http.ErrServerClosed.
func (s *Server) Start(addr string) error {
	s.httpSrv.Addr = addr
	s.logger.Info("Starting API server", zap.String("addr", addr))
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops accepting new connections and drains in-flight
// requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpSrv.Shutdown(ctx)
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", s.addOrder)
			orders.POST("/process", s.processNext)
			orders.GET("/search", s.searchOrders)
		}

		queue := v1.Group("/queue")
		{
			queue.GET("/status", s.queueStatus)
			queue.GET("/history", s.getHistory)
			queue.POST("/undo", s.undoLast)
		}
	}
}
