// If you are AI: This file defines the JSON form of demux events sent to network clients.
// Both the HTTP and WebSocket transports emit one Message per event.

package session

import (
	"flvdemux/internal/core/protocol/flv"

	"github.com/pkg/errors"
)

// Message event names.
const (
	EventHeader = "header"
	EventTag    = "tag"
	EventFailed = "failed"
	EventEnd    = "end"
)

// Message is one event as sent over the wire.
type Message struct {
	Event  string         `json:"event"`
	Header *HeaderMessage `json:"header,omitempty"`
	Tag    *TagMessage    `json:"tag,omitempty"`
	Error  *ErrorMessage  `json:"error,omitempty"`
}

// HeaderMessage mirrors flv.Header.
type HeaderMessage struct {
	Version    uint8  `json:"version"`
	HasAudio   bool   `json:"has_audio"`
	HasVideo   bool   `json:"has_video"`
	DataOffset uint32 `json:"data_offset"`
}

// TagMessage mirrors flv.TagRecord.
type TagMessage struct {
	Type          string         `json:"type"`
	DataSize      uint32         `json:"data_size"`
	Timestamp     uint32         `json:"timestamp"`
	StreamID      uint32         `json:"stream_id"`
	PayloadOffset uint64         `json:"payload_offset"`
	PayloadLength uint32         `json:"payload_length"`
	Script        *ScriptMessage `json:"script,omitempty"`
}

// ScriptMessage mirrors flv.ScriptData.
type ScriptMessage struct {
	Name             string `json:"name,omitempty"`
	Entries          int    `json:"entries"`
	ObjectListLength uint32 `json:"object_list_length"`
}

// ErrorMessage mirrors flv.Error.
type ErrorMessage struct {
	Kind     string `json:"kind"`
	Offset   uint64 `json:"offset"`
	Field    string `json:"field,omitempty"`
	Expected uint64 `json:"expected"`
	Actual   uint64 `json:"actual"`
	Message  string `json:"message"`
}

// NewMessage converts a demux event.
func NewMessage(ev flv.Event) Message {
	switch e := ev.(type) {
	case flv.HeaderParsed:
		return Message{Event: EventHeader, Header: &HeaderMessage{
			Version:    e.Header.Version,
			HasAudio:   e.Header.HasAudio,
			HasVideo:   e.Header.HasVideo,
			DataOffset: e.Header.DataOffset,
		}}
	case flv.TagParsed:
		rec := e.Tag
		tm := &TagMessage{
			Type:          rec.Header.Type.String(),
			DataSize:      rec.Header.DataSize,
			Timestamp:     rec.Header.Timestamp,
			StreamID:      rec.Header.StreamID,
			PayloadOffset: rec.PayloadOffset,
			PayloadLength: rec.PayloadLength,
		}
		if rec.Script != nil {
			tm.Script = &ScriptMessage{
				Name:             rec.Script.Name,
				Entries:          rec.Script.Entries,
				ObjectListLength: rec.Script.ObjectListLength,
			}
		}
		return Message{Event: EventTag, Tag: tm}
	case flv.ParseFailed:
		return FailedMessage(e.Err)
	}
	return Message{Event: "unknown"}
}

// FailedMessage converts a fatal error. Errors that are not *flv.Error carry only the message text.
func FailedMessage(err error) Message {
	var fe *flv.Error
	if !errors.As(err, &fe) {
		return Message{Event: EventFailed, Error: &ErrorMessage{Message: err.Error()}}
	}
	return Message{Event: EventFailed, Error: &ErrorMessage{
		Kind:     fe.Kind.String(),
		Offset:   fe.Offset,
		Field:    fe.Field,
		Expected: fe.Expected,
		Actual:   fe.Actual,
		Message:  fe.Error(),
	}}
}

// EndMessage reports that the stream ended on a record boundary.
func EndMessage() Message {
	return Message{Event: EventEnd}
}
