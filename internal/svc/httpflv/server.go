// If you are AI: This file provides HTTP demux service integration.
// The service is integrated into the main HTTP server.

package httpflv

import (
	"net/http"

	"flvdemux/internal/core/session"

	"go.uber.org/zap"
)

// Service provides HTTP demux functionality.
type Service struct {
	handler *Handler
}

// NewService creates a new HTTP demux service.
func NewService(registry *session.Registry, chunkSize int, logger *zap.Logger) *Service {
	return &Service{
		handler: NewHandler(registry, chunkSize, logger),
	}
}

// RegisterRoutes registers HTTP demux routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}
