// If you are AI: This file implements the WebSocket handler for demux sessions.
// Handles GET /ws/demux requests and manages session lifecycle.

package wsflv

import (
	"net/http"

	"flvdemux/internal/core/session"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Path is the WebSocket demux endpoint.
const Path = "/ws/demux"

// Handler handles WebSocket demux requests.
type Handler struct {
	registry *session.Registry
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket demux handler.
// bufferSize sizes the connection read buffer.
func NewHandler(registry *session.Registry, bufferSize int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize: bufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for now
				// NOTE: In production, this should be restricted
				return true
			},
		},
	}
}

// ServeHTTP handles WebSocket upgrade and runs the ingest loop.
// Endpoint: GET /ws/demux
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != Path {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	sess, err := h.registry.Open("ws", r.RemoteAddr)
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer h.registry.Close(sess.ID())

	header := http.Header{}
	header.Set("X-Session-Id", sess.ID().String())

	// Upgrade to WebSocket
	conn, err := h.upgrader.Upgrade(w, r, header)
	if err != nil {
		// Upgrade failed, response already sent
		return
	}
	defer conn.Close()

	if err := NewIngest(conn, sess).Run(); err != nil {
		h.logger.Debug("websocket ingest ended", zap.String("session", sess.ID().String()), zap.Error(err))
	}
}

// RegisterRoutes registers WebSocket demux routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle(Path, h)
}
