// If you are AI: This file implements the WebSocket ingest loop for one demux session.
// Binary messages are chunks of the stream; each event goes back as a JSON text message.

package wsflv

import (
	"encoding/json"

	"flvdemux/internal/core/protocol/flv"
	"flvdemux/internal/core/session"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// FinishCommand is the text message that ends the stream.
const FinishCommand = "finish"

// WebSocketConn defines the WebSocket operations the ingest loop needs.
// This allows for easier testing and abstraction.
type WebSocketConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Ingest feeds one WebSocket connection into one session.
type Ingest struct {
	conn WebSocketConn
	sess *session.Session
}

// NewIngest creates an ingest loop for conn.
func NewIngest(conn WebSocketConn, sess *session.Session) *Ingest {
	return &Ingest{conn: conn, sess: sess}
}

// Run reads chunks until the client finishes, closes, or the stream fails.
// It returns nil when the stream ended and its final event was delivered.
func (in *Ingest) Run() error {
	for {
		messageType, data, err := in.conn.ReadMessage()
		if err != nil {
			// The client is gone; finish for the session record only.
			_ = in.sess.Finish()
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Wrap(err, "read message")
		}

		switch messageType {
		case websocket.BinaryMessage:
			failed := false
			for _, ev := range in.sess.Feed(data) {
				if _, ok := ev.(flv.ParseFailed); ok {
					failed = true
				}
				if err := in.send(session.NewMessage(ev)); err != nil {
					return err
				}
			}
			if failed {
				_ = in.sess.Finish()
				return in.close(websocket.CloseInvalidFramePayloadData, "stream rejected")
			}

		case websocket.TextMessage:
			if string(data) != FinishCommand {
				return in.close(websocket.CloseUnsupportedData, "unknown command")
			}
			msg := session.EndMessage()
			if err := in.sess.Finish(); err != nil {
				msg = session.FailedMessage(err)
			}
			if err := in.send(msg); err != nil {
				return err
			}
			return in.close(websocket.CloseNormalClosure, "")
		}
	}
}

func (in *Ingest) send(msg session.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}
	if err := in.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Wrap(err, "write event")
	}
	return nil
}

func (in *Ingest) close(code int, text string) error {
	return in.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, text))
}
