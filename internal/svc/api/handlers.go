// If you are AI: This file implements HTTP API handlers.
// All handlers are fast and never block demux sessions.

package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strings"

	"flvdemux/internal/core/session"

	"github.com/google/uuid"
)

// ServerResponse represents the /api/server response.
type ServerResponse struct {
	Version         string   `json:"version"`
	Uptime          int64    `json:"uptime"` // seconds
	GoVersion       string   `json:"go_version"`
	EnabledServices []string `json:"enabled_services"`
	Sessions        int      `json:"sessions"`
}

// SessionsResponse represents the /api/sessions response.
type SessionsResponse struct {
	Sessions []session.Info `json:"sessions"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServer handles GET /api/server.
// Returns server version, uptime, and enabled services.
func (s *Service) handleServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	response := ServerResponse{
		Version:         Version,
		Uptime:          getCurrentTime() - s.startTime,
		GoVersion:       runtime.Version(),
		EnabledServices: s.services,
		Sessions:        s.registry.Count(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleSessions handles GET /api/sessions.
// Returns open demux sessions, oldest first.
func (s *Service) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.writeJSON(w, http.StatusOK, SessionsResponse{Sessions: s.registry.List()})
}

// handleSession handles GET /api/sessions/{id}.
func (s *Service) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/sessions/"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	sess := s.registry.Get(id)
	if sess == nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	s.writeJSON(w, http.StatusOK, sess.Info())
}

// writeJSON writes a JSON response.
func (s *Service) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
