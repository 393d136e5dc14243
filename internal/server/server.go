package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Server struct {
	Engine    *gin.Engine
	Addr      string
	health    HealthChecker
	recompute RecomputeState
}

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RecomputeState reports whether a full recompute is in flight.
type RecomputeState interface {
	Running() bool
}

// New builds the gin engine. health may be nil when no database backs the service.
func New(addr string, health HealthChecker, mode string) *Server {
	// Set Gin mode based on configuration
	switch mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	s := &Server{
		Engine: r,
		Addr:   addr,
		health: health,
	}

	// Health check endpoint with database connectivity verification
	r.GET("/health", s.healthHandler)

	return s
}

// TrackRecompute adds the recompute job state to /health.
func (s *Server) TrackRecompute(state RecomputeState) {
	s.recompute = state
}

// requestLogger logs one line per request through slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("[HTTP] Request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"database": "memory",
	}
	if s.recompute != nil {
		body["recomputeRunning"] = s.recompute.Running()
	}

	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.health.Ping(ctx); err != nil {
			slog.Error("[HTTP] Health check failed: database unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		body["database"] = "connected"
	}

	c.JSON(http.StatusOK, body)
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("[HTTP] Starting server", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("[HTTP] Stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[HTTP] Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
