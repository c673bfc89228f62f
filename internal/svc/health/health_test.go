// If you are AI: This file contains unit tests for the health endpoint.

package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fixedCount int

func (c fixedCount) Count() int { return int(c) }

func TestHealth(t *testing.T) {
	mux := http.NewServeMux()
	New(fixedCount(3)).RegisterRoutes(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Sessions != 3 {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestHealthMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	New(nil).handleHealth(w, httptest.NewRequest("POST", "/healthz", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}
