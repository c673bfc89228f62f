// If you are AI: This file provides HTTP API service integration.
// The API exposes server and session state read-only.

package api

import (
	"net/http"
	"time"

	"flvdemux/internal/core/session"
)

// Version is reported by /api/server. Overridden at build time with -ldflags.
var Version = "dev"

// Service provides HTTP API functionality.
type Service struct {
	registry  *session.Registry
	services  []string
	startTime int64
}

// NewService creates a new API service.
// services lists the enabled endpoints reported by /api/server.
func NewService(registry *session.Registry, services []string) *Service {
	return &Service{
		registry:  registry,
		services:  services,
		startTime: getCurrentTime(),
	}
}

// RegisterRoutes registers API routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/server", s.handleServer)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/sessions/", s.handleSession)
}

// getCurrentTime returns current Unix timestamp.
// Extracted for testability.
func getCurrentTime() int64 {
	return time.Now().Unix()
}
