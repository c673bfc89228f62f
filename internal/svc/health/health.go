// If you are AI: This file implements the health check endpoint for monitoring.

package health

import (
	"encoding/json"
	"net/http"
)

// SessionCounter reports the number of open demux sessions.
type SessionCounter interface {
	Count() int
}

// Response is the /healthz body.
type Response struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// Service provides health check functionality.
type Service struct {
	sessions SessionCounter
}

// New creates a new health service instance.
// sessions may be nil, in which case zero sessions are reported.
func New(sessions SessionCounter) *Service {
	return &Service{sessions: sessions}
}

// RegisterRoutes adds health check routes to the provided mux.
// Currently registers /healthz which returns 200 OK.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
}

// handleHealth responds to health check requests.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	resp := Response{Status: "ok"}
	if s.sessions != nil {
		resp.Sessions = s.sessions.Count()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
