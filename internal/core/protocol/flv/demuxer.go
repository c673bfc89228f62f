// If you are AI: This file implements the stream assembler that drives FLV demuxing.
// Chunks may split fields anywhere; parsing suspends and resumes at the exact unconsumed byte.

package flv

import (
	"errors"
)

// phase is the position of the demuxer in the stream grammar.
type phase uint8

const (
	phaseHeader phase = iota
	phasePadding
	phasePreviousTagSize
	phaseTag
)

// Demuxer consumes an FLV byte stream chunk by chunk.
// A Demuxer is not safe for concurrent use; each stream needs its own instance.
// Allocation: The buffer holds at most one unfinished field or one script-data payload;
// audio and video payloads are skipped without being retained.
type Demuxer struct {
	buf    []byte
	pos    int
	state  ParseState
	phase  phase
	skip   uint32
	maxPad uint32
	header *Header
	err    *Error
}

// NewDemuxer creates a demuxer positioned at the start of a stream.
func NewDemuxer() *Demuxer {
	return &Demuxer{
		state:  ParseState{PreviousTagSize: FirstPreviousTagSize},
		maxPad: DefaultMaxHeaderPadding,
	}
}

// SetMaxHeaderPadding changes the padding limit; call it before the first Feed.
func (d *Demuxer) SetMaxHeaderPadding(n uint32) {
	d.maxPad = n
}

// Feed appends chunk to the stream and returns the events it completes.
// A chunk ending mid-field yields no event for that field; the next Feed resumes it.
// After a ParseFailed event the demuxer ignores further input.
func (d *Demuxer) Feed(chunk []byte) []Event {
	if d.err != nil {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var events []Event
	for {
		ev, err := d.step()
		if err != nil {
			if errors.Is(err, ErrInsufficientData) {
				break
			}
			d.fail(err)
			events = append(events, ParseFailed{Err: d.err})
			break
		}
		if ev != nil {
			events = append(events, ev)
		}
	}

	d.compact()
	return events
}

// Finish reports whether the stream ended on a record boundary.
// It returns a KindTruncatedStream error when input stopped inside the header,
// a previous tag size or a tag, and the stored error if the stream already failed.
func (d *Demuxer) Finish() error {
	if d.err != nil {
		return d.err
	}

	buffered := len(d.buf) - d.pos
	var field string
	switch d.phase {
	case phaseHeader:
		field = "header"
	case phasePadding:
		field = "header padding"
	case phasePreviousTagSize:
		if buffered == 0 {
			return nil
		}
		field = previousTagSizeSpec.Name
	case phaseTag:
		t := d.state.pending
		if t.step == stepTagType && buffered == 0 {
			return nil
		}
		field = t.step.String()
	}

	d.err = &Error{
		Kind:   KindTruncatedStream,
		Offset: d.state.AbsoluteOffset + uint64(buffered),
		Field:  field,
	}
	return d.err
}

// Demux runs a complete in-memory stream through a new demuxer.
// The returned error is the fatal error, if any, including truncation.
func Demux(data []byte) ([]Event, error) {
	d := NewDemuxer()
	events := d.Feed(data)
	if err := d.Finish(); err != nil {
		return events, err
	}
	return events, nil
}

// Header returns the parsed file header once available.
func (d *Demuxer) Header() (Header, bool) {
	if d.header == nil {
		return Header{}, false
	}
	return *d.header, true
}

// State returns a copy of the current parse state.
func (d *Demuxer) State() ParseState {
	return d.state
}

// Err returns the fatal error that stopped the stream, or nil.
func (d *Demuxer) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

// Buffered returns the number of received bytes not yet consumed.
func (d *Demuxer) Buffered() int {
	return len(d.buf) - d.pos
}

// step performs one unit of work. It returns ErrInsufficientData, without
// consuming anything, when the next field is not fully buffered.
func (d *Demuxer) step() (Event, error) {
	win := d.buf[d.pos:]

	switch d.phase {
	case phaseHeader:
		// The header sits at stream offset 0, so its error offsets are absolute.
		h, err := ParseHeader(win)
		if err != nil {
			return nil, err
		}
		if h.DataOffset < FLVHeaderSize {
			return nil, newError(KindInvalidDataOffset, 5, fieldDataOffset, FLVHeaderSize, uint64(h.DataOffset))
		}
		if h.DataOffset-FLVHeaderSize > d.maxPad {
			return nil, newError(KindInvalidDataOffset, 5, fieldDataOffset, uint64(d.maxPad)+FLVHeaderSize, uint64(h.DataOffset))
		}
		d.consume(FLVHeaderSize)
		d.header = &h
		d.skip = h.DataOffset - FLVHeaderSize
		d.phase = phasePreviousTagSize
		if d.skip > 0 {
			d.phase = phasePadding
		}
		return HeaderParsed{Header: h}, nil

	case phasePadding:
		if len(win) == 0 {
			return nil, ErrInsufficientData
		}
		n := min(len(win), int(d.skip))
		d.consume(n)
		d.skip -= uint32(n)
		if d.skip == 0 {
			d.phase = phasePreviousTagSize
		}
		return nil, nil

	case phasePreviousTagSize:
		n, err := checkPreviousTagSize(win, &d.state)
		if err != nil {
			return nil, err
		}
		d.consume(n)
		d.state.pending = newTagState(d.state.AbsoluteOffset)
		d.phase = phaseTag
		return nil, nil

	case phaseTag:
		t := d.state.pending
		n, err := t.next(win, &d.state)
		if err != nil {
			return nil, err
		}
		d.consume(n)
		if !t.done() {
			return nil, nil
		}
		d.state.PreviousTagSize = t.length
		d.state.pending = nil
		d.phase = phasePreviousTagSize
		return TagParsed{Tag: t.record()}, nil
	}

	return nil, ErrInsufficientData
}

// consume advances past n buffered bytes.
func (d *Demuxer) consume(n int) {
	d.pos += n
	d.state.AbsoluteOffset += uint64(n)
}

// compact drops consumed bytes so the buffer only holds pending input.
func (d *Demuxer) compact() {
	if d.pos == len(d.buf) {
		d.buf = d.buf[:0]
		d.pos = 0
		return
	}
	if d.pos > 0 {
		n := copy(d.buf, d.buf[d.pos:])
		d.buf = d.buf[:n]
		d.pos = 0
	}
}

// fail records err as the stream's fatal error.
func (d *Demuxer) fail(err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: KindTruncatedStream, Offset: d.state.AbsoluteOffset, Field: err.Error()}
	}
	d.err = e
}
