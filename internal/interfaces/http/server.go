// Package http is the HTTP adapter: it translates requests into application
// service calls and service results into a uniform JSON envelope.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carepath/medicaid-intake/internal/application/service"
)

// Logger is the minimal logging surface the HTTP layer needs.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP adapter over the intake services.
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	logger     Logger
}

// NewServer wires the routes and middleware.
func NewServer(
	config ServerConfig,
	sessions *service.SessionService,
	submissions *service.SubmissionService,
	reports *service.ReportService,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config: config,
		router: gin.New(),
		logger: logger,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	handlers := NewHandlers(sessions, submissions, reports, logger)

	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		api.POST("/sessions", handlers.CreateSession)
		api.GET("/sessions/:id", handlers.GetSession)
		api.DELETE("/sessions/:id", handlers.CloseSession)
		api.POST("/sessions/:id/fields", handlers.ApplyFieldChange)
		api.POST("/sessions/:id/submit", handlers.Submit)
		api.GET("/sessions/:id/progress", handlers.GetProgress)
		api.GET("/sessions/:id/results", handlers.GetResults)
		api.GET("/sessions/:id/submissions", handlers.ListSubmissions)

		api.GET("/sessions/:id/draft", handlers.DraftStatus)
		api.POST("/sessions/:id/draft/restore", handlers.RestoreDraft)
		api.DELETE("/sessions/:id/draft", handlers.DiscardDraft)

		api.POST("/sessions/:id/report", handlers.GenerateReport)
		api.GET("/sessions/:id/report/export", handlers.ExportWorkbook)

		api.GET("/rules/:state", handlers.EligibilityRules)
		api.GET("/reports/download/:reportId", handlers.DownloadReport)
	}

	return s
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("HTTP server starting", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
