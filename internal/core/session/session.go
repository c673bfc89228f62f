// If you are AI: This file implements a demux Session: one Demuxer bound to one network client.
// The session serialises access to its Demuxer and keeps running counters for the API.

package session

import (
	"sync"
	"time"

	"flvdemux/internal/core/protocol/flv"
	"flvdemux/internal/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// State is the lifecycle state of a session.
type State string

const (
	StateActive   State = "active"
	StateFinished State = "finished"
	StateFailed   State = "failed"
)

// Info is a point-in-time snapshot of a session.
type Info struct {
	ID        string    `json:"id"`
	Remote    string    `json:"remote"`
	Transport string    `json:"transport"`
	State     State     `json:"state"`
	Started   time.Time `json:"started"`
	Bytes     uint64    `json:"bytes"`
	Tags      uint64    `json:"tags"`
	Offset    uint64    `json:"offset"`
	Error     string    `json:"error,omitempty"`
}

// Session wraps a Demuxer for a single client stream.
// Lock expectations: Feed, Finish and Info may be called from different goroutines.
type Session struct {
	id        uuid.UUID
	remote    string
	transport string
	started   time.Time
	logger    *zap.Logger
	metrics   *metrics.Metrics

	mu     sync.Mutex
	demux  *flv.Demuxer
	state  State
	bytes  uint64
	tags   uint64
	errMsg string
}

func newSession(transport, remote string, logger *zap.Logger, m *metrics.Metrics) *Session {
	id := uuid.New()
	return &Session{
		id:        id,
		remote:    remote,
		transport: transport,
		started:   time.Now(),
		logger:    logger.With(zap.String("session", id.String()), zap.String("transport", transport)),
		metrics:   m,
		demux:     flv.NewDemuxer(),
		state:     StateActive,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Feed passes chunk to the demuxer and returns the completed events.
func (s *Session) Feed(chunk []byte) []flv.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return nil
	}
	s.bytes += uint64(len(chunk))
	s.metrics.ObserveBytes(len(chunk))

	events := s.demux.Feed(chunk)
	s.metrics.ObserveEvents(events)
	for _, ev := range events {
		switch e := ev.(type) {
		case flv.HeaderParsed:
			s.logger.Debug("header parsed",
				zap.Bool("audio", e.Header.HasAudio),
				zap.Bool("video", e.Header.HasVideo),
				zap.Uint32("data_offset", e.Header.DataOffset))
		case flv.TagParsed:
			s.tags++
		case flv.ParseFailed:
			s.state = StateFailed
			s.errMsg = e.Err.Error()
			s.logger.Warn("stream rejected",
				zap.Stringer("kind", e.Err.Kind),
				zap.Uint64("offset", e.Err.Offset),
				zap.String("field", e.Err.Field))
		}
	}
	return events
}

// Finish ends the input. It returns the truncation or earlier fatal error, if any.
// Calling Finish more than once returns the same result.
func (s *Session) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.state == StateActive
	err := s.demux.Finish()
	if !wasActive {
		return err
	}

	if err != nil {
		s.state = StateFailed
		s.errMsg = err.Error()
		var fe *flv.Error
		if errors.As(err, &fe) {
			s.metrics.ObserveFailure(fe.Kind)
		}
		s.logger.Warn("stream truncated", zap.Error(err))
		return err
	}
	s.state = StateFinished
	s.logger.Info("stream finished", zap.Uint64("bytes", s.bytes), zap.Uint64("tags", s.tags))
	return nil
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Info{
		ID:        s.id.String(),
		Remote:    s.remote,
		Transport: s.transport,
		State:     s.state,
		Started:   s.started,
		Bytes:     s.bytes,
		Tags:      s.tags,
		Offset:    s.demux.State().AbsoluteOffset,
		Error:     s.errMsg,
	}
}
