// If you are AI: This file implements the per-tag state machine.
// The state machine suspends between fields and resumes without re-reading consumed bytes.

package flv

// TagHeader is the decoded 11-byte tag prefix.
// Timestamp combines the 24-bit base with the extension byte as the top 8 bits.
type TagHeader struct {
	Type      TagType
	DataSize  uint32
	Timestamp uint32
	StreamID  uint32
}

// TagRecord describes one parsed tag. The payload is not copied;
// PayloadOffset and PayloadLength locate it in the stream.
// Script is set for script-data tags only.
type TagRecord struct {
	Header        TagHeader
	PayloadOffset uint64
	PayloadLength uint32
	Script        *ScriptData
}

// TagLength returns the size of the tag on the wire (11 + data size).
func (r TagRecord) TagLength() uint32 {
	return TagHeaderSize + r.Header.DataSize
}

// tagStep is a state of the tag state machine.
type tagStep uint8

const (
	stepTagType tagStep = iota
	stepDataSize
	stepTimestamp
	stepTimestampExtended
	stepStreamID
	stepData
	stepDone
)

// tagLayout describes the fixed tag prefix, indexed by step.
var tagLayout = [...]FieldSpec{
	stepTagType:           {Name: "tagType", Kind: FieldU8},
	stepDataSize:          {Name: "dataSize", Kind: FieldU24},
	stepTimestamp:         {Name: "timestamp", Kind: FieldU24},
	stepTimestampExtended: {Name: "timestampExtended", Kind: FieldU8},
	stepStreamID:          {Name: "streamId", Desc: "must be 0", Kind: FieldU24, Exact: true, Want: 0, Fail: KindInvalidStreamID},
}

// String returns the field name the step reads.
func (s tagStep) String() string {
	switch s {
	case stepData:
		return "data"
	case stepDone:
		return "done"
	default:
		return tagLayout[s].Name
	}
}

// tagState carries everything known about the tag being parsed.
// offset counts bytes consumed since start; length is 11 + dataSize once known.
type tagState struct {
	step   tagStep
	start  uint64
	offset uint32
	length uint32
	base   uint32
	header TagHeader
	script *ScriptData
}

// newTagState starts a tag at the given absolute offset.
func newTagState(start uint64) *tagState {
	return &tagState{start: start}
}

// done reports whether the whole tag has been consumed.
func (t *tagState) done() bool {
	return t.step == stepDone
}

// next performs one transition using bytes at the start of win.
// win begins at st.AbsoluteOffset. Returns the bytes consumed, or ErrInsufficientData
// with nothing consumed when win is too short for the pending field.
func (t *tagState) next(win []byte, st *ParseState) (int, error) {
	at := st.AbsoluteOffset
	if t.step == stepData {
		return t.data(win, at)
	}
	if t.step == stepDone {
		return 0, nil
	}

	v, _, n, err := ReadField(win, 0, tagLayout[t.step])
	if err != nil {
		return 0, rebase(err, at)
	}

	switch t.step {
	case stepTagType:
		typ, ok := tagTypeOf(uint8(v))
		if !ok {
			return 0, newError(KindUnknownTagType, at, tagLayout[stepTagType].Name, 0, uint64(v))
		}
		t.header.Type = typ
	case stepDataSize:
		t.header.DataSize = v
		t.length = TagHeaderSize + v
	case stepTimestamp:
		t.base = v
	case stepTimestampExtended:
		t.header.Timestamp = v<<24 | t.base
	case stepStreamID:
		t.header.StreamID = v
	}

	t.offset += uint32(n)
	t.step++
	return n, nil
}

// data handles the payload. Script data is decoded once fully buffered;
// audio and video bytes are counted and skipped as they arrive.
func (t *tagState) data(win []byte, at uint64) (int, error) {
	if t.header.Type == Script {
		size := int(t.header.DataSize)
		if size < scriptDataEndMarkerSize {
			return 0, newError(KindScriptDataOverrun, at, tagLayout[stepDataSize].Name, scriptDataEndMarkerSize, uint64(size))
		}
		if len(win) < size {
			return 0, ErrInsufficientData
		}
		sd, err := DecodeScriptData(win[:size], at)
		if err != nil {
			return 0, err
		}
		t.script = &sd
		t.offset += uint32(size)
		t.step = stepDone
		return size, nil
	}

	remaining := int(t.length - t.offset)
	if remaining == 0 {
		t.step = stepDone
		return 0, nil
	}
	if len(win) == 0 {
		return 0, ErrInsufficientData
	}

	n := min(len(win), remaining)
	t.offset += uint32(n)
	if t.offset == t.length {
		t.step = stepDone
	}
	return n, nil
}

// record builds the TagRecord for a finished tag.
func (t *tagState) record() TagRecord {
	return TagRecord{
		Header:        t.header,
		PayloadOffset: t.start + TagHeaderSize,
		PayloadLength: t.header.DataSize,
		Script:        t.script,
	}
}
