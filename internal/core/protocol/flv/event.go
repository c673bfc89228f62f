// If you are AI: This file defines the events the demuxer reports while consuming a stream.

package flv

// Event is one of HeaderParsed, TagParsed or ParseFailed.
type Event interface {
	isEvent()
}

// HeaderParsed reports the validated file header.
type HeaderParsed struct {
	Header Header
}

// TagParsed reports a complete, validated tag.
type TagParsed struct {
	Tag TagRecord
}

// ParseFailed reports a fatal error. No further events follow it.
type ParseFailed struct {
	Err *Error
}

func (HeaderParsed) isEvent() {}
func (TagParsed) isEvent()    {}
func (ParseFailed) isEvent()  {}
