// If you are AI: This file implements the HTTP handler for demux requests.
// Handles POST /demux: the request body is an FLV stream, the response is NDJSON events.

package httpflv

import (
	"context"
	"net/http"

	"flvdemux/internal/core/protocol/flv"
	"flvdemux/internal/core/session"
	"flvdemux/internal/source"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ContentType is the media type of demux responses.
const ContentType = "application/x-ndjson"

// Handler handles HTTP demux requests.
type Handler struct {
	registry  *session.Registry
	chunkSize int
	logger    *zap.Logger
}

// NewHandler creates a new HTTP demux handler.
func NewHandler(registry *session.Registry, chunkSize int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry:  registry,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// ServeHTTP demuxes the request body.
// Endpoint: POST /demux
// Stream errors are reported in the event stream with status 200; the status
// code only covers errors before streaming starts.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, err := h.registry.Open("http", r.RemoteAddr)
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer h.registry.Close(sess.ID())

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("X-Session-Id", sess.ID().String())
	w.WriteHeader(http.StatusOK)

	out := NewEventWriter(w)
	err = source.Pump(r.Context(), r.Body, sess, h.chunkSize, out.WriteEvent)

	var fe *flv.Error
	switch {
	case err == nil, errors.As(err, &fe):
		if werr := out.WriteEnd(err); werr != nil {
			h.logger.Debug("write end event", zap.Error(werr))
		}
	case errors.Is(err, context.Canceled):
		h.logger.Debug("client went away", zap.String("session", sess.ID().String()))
	default:
		h.logger.Warn("demux request aborted", zap.String("session", sess.ID().String()), zap.Error(err))
		_ = out.WriteEnd(err)
	}
}

// RegisterRoutes registers HTTP demux routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/demux", h)
}
