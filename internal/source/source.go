// If you are AI: This file drives a demuxer from an io.Reader in fixed-size chunks.
// The demuxer never sees the reader; it only receives the chunks read from it.

package source

import (
	"context"
	"io"

	"flvdemux/internal/core/protocol/flv"

	"github.com/pkg/errors"
)

// DefaultChunkSize is used when Pump is given a non-positive chunk size.
const DefaultChunkSize = 32 * 1024

// Feeder is satisfied by *flv.Demuxer and by session.Session.
type Feeder interface {
	Feed(chunk []byte) []flv.Event
	Finish() error
}

// EventFunc receives each event in stream order. A non-nil error stops the pump.
type EventFunc func(flv.Event) error

// Pump reads r in chunks of chunkSize, feeds them to d and passes every event to fn.
// At EOF it calls Finish. It returns the demuxer's fatal error (a *flv.Error),
// a wrapped read error, the error returned by fn, or the context's error.
func Pump(ctx context.Context, r io.Reader, d Feeder, chunkSize int, fn EventFunc) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			failed := false
			for _, ev := range d.Feed(buf[:n]) {
				if _, ok := ev.(flv.ParseFailed); ok {
					failed = true
				}
				if fn != nil {
					if err := fn(ev); err != nil {
						return err
					}
				}
			}
			if failed {
				return d.Finish()
			}
		}

		if readErr == io.EOF {
			return d.Finish()
		}
		if readErr != nil {
			return errors.Wrap(readErr, "read stream")
		}
	}
}

// ReadPayload reads the payload of rec from the stream the record was parsed from.
func ReadPayload(r io.ReaderAt, rec flv.TagRecord) ([]byte, error) {
	payload := make([]byte, rec.PayloadLength)
	if len(payload) == 0 {
		return payload, nil
	}
	if _, err := r.ReadAt(payload, int64(rec.PayloadOffset)); err != nil {
		return nil, errors.Wrapf(err, "read payload at %d", rec.PayloadOffset)
	}
	return payload, nil
}
