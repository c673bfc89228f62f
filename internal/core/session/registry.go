// If you are AI: This file implements the Registry for managing demux session lifecycle.
// The registry maps session ids to Session instances and enforces the session limit.

package session

import (
	"sort"
	"sync"

	"flvdemux/internal/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrTooManySessions is returned by Open when the session limit is reached.
var ErrTooManySessions = errors.New("too many demux sessions")

// Registry manages the lifecycle of sessions.
// Lock expectations: Mutex-protected for concurrent access.
// Allocation: One Session and one Demuxer per Open.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	max      int
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewRegistry creates a session registry.
// max bounds concurrently open sessions; 0 means unlimited.
// A nil logger discards logs and nil metrics record nothing.
func NewRegistry(max int, logger *zap.Logger, m *metrics.Metrics) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		max:      max,
		logger:   logger,
		metrics:  m,
	}
}

// Open creates and registers a new session.
func (r *Registry) Open(transport, remote string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max > 0 && len(r.sessions) >= r.max {
		return nil, errors.Wrapf(ErrTooManySessions, "limit %d", r.max)
	}

	s := newSession(transport, remote, r.logger, r.metrics)
	r.sessions[s.id] = s
	r.metrics.SessionOpened()
	s.logger.Debug("session opened", zap.String("remote", remote))
	return s, nil
}

// Get retrieves a session by id, returning nil if not found.
func (r *Registry) Get(id uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Close removes a session from the registry.
// Returns false if the session was not registered.
func (r *Registry) Close(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return false
	}
	delete(r.sessions, id)
	r.metrics.SessionClosed()
	return true
}

// Count returns the number of open sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns snapshots of all open sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	infos := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Started.Equal(infos[j].Started) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].Started.Before(infos[j].Started)
	})
	return infos
}
