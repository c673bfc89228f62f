// If you are AI: This file contains unit tests for API handlers.
// Tests verify JSON responses and error handling.

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flvdemux/internal/core/protocol/flv"
	"flvdemux/internal/core/session"

	"github.com/google/uuid"
)

func TestHandleServer(t *testing.T) {
	registry := session.NewRegistry(0, nil, nil)
	service := NewService(registry, []string{"http_demux", "ws_demux"})

	req := httptest.NewRequest("GET", "/api/server", nil)
	w := httptest.NewRecorder()

	service.handleServer(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response ServerResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Version == "" {
		t.Error("Version should not be empty")
	}
	if response.Uptime < 0 {
		t.Error("Uptime should be non-negative")
	}
	if response.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
	if len(response.EnabledServices) != 2 {
		t.Errorf("Expected 2 enabled services, got %v", response.EnabledServices)
	}
}

func TestHandleSessions(t *testing.T) {
	registry := session.NewRegistry(0, nil, nil)
	service := NewService(registry, nil)

	// Test empty sessions
	req := httptest.NewRequest("GET", "/api/sessions", nil)
	w := httptest.NewRecorder()

	service.handleSessions(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response SessionsResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Sessions) != 0 {
		t.Errorf("Expected 0 sessions, got %d", len(response.Sessions))
	}

	// Test with a session that has consumed a header
	sess, err := registry.Open("http", "10.0.0.1:4000")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	sess.Feed(flv.NewHeader(true, false).Bytes())

	w2 := httptest.NewRecorder()
	service.handleSessions(w2, httptest.NewRequest("GET", "/api/sessions", nil))

	var response2 SessionsResponse
	if err := json.NewDecoder(w2.Body).Decode(&response2); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response2.Sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(response2.Sessions))
	}
	info := response2.Sessions[0]
	if info.ID != sess.ID().String() || info.Transport != "http" || info.Bytes != 9 || info.State != session.StateActive {
		t.Errorf("Unexpected session info %+v", info)
	}
}

func TestHandleSession(t *testing.T) {
	registry := session.NewRegistry(0, nil, nil)
	service := NewService(registry, nil)
	mux := http.NewServeMux()
	service.RegisterRoutes(mux)

	sess, _ := registry.Open("ws", "client")

	cases := []struct {
		path string
		code int
	}{
		{"/api/sessions/" + sess.ID().String(), http.StatusOK},
		{"/api/sessions/" + uuid.New().String(), http.StatusNotFound},
		{"/api/sessions/not-a-uuid", http.StatusBadRequest},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", c.path, nil))
		if w.Code != c.code {
			t.Errorf("%s: expected status %d, got %d", c.path, c.code, w.Code)
		}
	}
}

func TestHandleMethodNotAllowed(t *testing.T) {
	service := NewService(session.NewRegistry(0, nil, nil), nil)

	handlers := []http.HandlerFunc{service.handleServer, service.handleSessions, service.handleSession}
	for _, h := range handlers {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("POST", "/api/server", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected status 405, got %d", w.Code)
		}
	}
}
