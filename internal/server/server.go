// If you are AI: This file implements the HTTP server lifecycle and routing.

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flvdemux/internal/config"
	"flvdemux/internal/core/session"
	"flvdemux/internal/metrics"
	"flvdemux/internal/svc/api"
	"flvdemux/internal/svc/health"
	"flvdemux/internal/svc/httpflv"
	"flvdemux/internal/svc/wsflv"

	"go.uber.org/zap"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer      *http.Server
	registry        *session.Registry
	metrics         *metrics.Metrics
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// New creates a new server instance with the given configuration.
// The server is not started until Start is called.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := metrics.New()
	registry := session.NewRegistry(cfg.Demux.MaxSessions, logger, m)

	mux := http.NewServeMux()

	health.New(registry).RegisterRoutes(mux)
	httpflv.NewService(registry, cfg.Demux.ChunkSize, logger).RegisterRoutes(mux)
	wsflv.NewService(registry, cfg.Demux.ChunkSize, logger).RegisterRoutes(mux)
	api.NewService(registry, []string{"http_demux", "ws_demux", "metrics"}).RegisterRoutes(mux)
	mux.Handle(cfg.Server.MetricsPath, m.Handler())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: mux,
	}

	return &Server{
		httpServer:      httpServer,
		registry:        registry,
		metrics:         m,
		logger:          logger,
		shutdownTimeout: time.Duration(cfg.Server.ShutdownSeconds) * time.Second,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Registry returns the session registry.
func (s *Server) Registry() *session.Registry {
	return s.registry
}

// Start begins serving HTTP requests.
// This method blocks until the server is stopped or encounters an error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server with a timeout.
// Returns an error if shutdown fails or times out.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ShutdownWithTimeout stops the server with the configured shutdown timeout.
// This is a convenience wrapper around Shutdown.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
