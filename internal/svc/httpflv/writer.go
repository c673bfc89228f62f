// If you are AI: This file implements the NDJSON event writer for HTTP demux responses.
// Each event is one JSON line, flushed as soon as it is written.

package httpflv

import (
	"bufio"
	"encoding/json"
	"io"
	"net/http"

	"flvdemux/internal/core/protocol/flv"
	"flvdemux/internal/core/session"
)

// EventWriter writes demux events as newline-delimited JSON.
type EventWriter struct {
	writer  *bufio.Writer
	encoder *json.Encoder
	flusher http.Flusher
	failed  bool
}

// NewEventWriter creates an EventWriter. If w is an http.Flusher it is flushed after every line.
func NewEventWriter(w io.Writer) *EventWriter {
	bw := bufio.NewWriter(w)
	ew := &EventWriter{
		writer:  bw,
		encoder: json.NewEncoder(bw),
	}
	if f, ok := w.(http.Flusher); ok {
		ew.flusher = f
	}
	return ew
}

// WriteEvent writes one demux event.
func (e *EventWriter) WriteEvent(ev flv.Event) error {
	if _, ok := ev.(flv.ParseFailed); ok {
		e.failed = true
	}
	return e.write(session.NewMessage(ev))
}

// WriteEnd writes the terminal line for a stream that stopped with err.
// A nil err writes an end event; an error already sent as a failed event writes nothing.
func (e *EventWriter) WriteEnd(err error) error {
	if err == nil {
		return e.write(session.EndMessage())
	}
	if e.failed {
		return nil
	}
	e.failed = true
	return e.write(session.FailedMessage(err))
}

func (e *EventWriter) write(msg session.Message) error {
	if err := e.encoder.Encode(msg); err != nil {
		return err
	}
	if err := e.writer.Flush(); err != nil {
		return err
	}
	if e.flusher != nil {
		e.flusher.Flush()
	}
	return nil
}
