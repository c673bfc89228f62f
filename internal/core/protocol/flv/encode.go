// If you are AI: This file contains the FLV encoders used to build streams for demuxer tests and fixtures.
// The demuxer never calls them; other packages' tests import them to build input streams.

package flv

// Bytes returns the FLV header as a byte slice.
// Zero Version and DataOffset are written as FLVVersion and FLVHeaderSize.
// Allocation: Pre-allocated 9-byte slice, no heap allocations.
func (h *Header) Bytes() []byte {
	header := make([]byte, FLVHeaderSize)

	// Signature "FLV" (3 bytes)
	copy(header[0:3], FLVSignature)

	// Version (1 byte)
	header[3] = h.Version
	if header[3] == 0 {
		header[3] = FLVVersion
	}

	// Flags (1 byte): audio and video flags
	flags := byte(0)
	if h.HasAudio {
		flags |= 0x04
	}
	if h.HasVideo {
		flags |= 0x01
	}
	header[4] = flags

	// Data offset (4 bytes, big-endian), points at the first previous tag size
	offset := h.DataOffset
	if offset == 0 {
		offset = FLVHeaderSize
	}
	header[5] = byte(offset >> 24)
	header[6] = byte(offset >> 16)
	header[7] = byte(offset >> 8)
	header[8] = byte(offset)

	return header
}

// NewHeader creates a new FLV header with specified audio/video flags.
func NewHeader(hasAudio, hasVideo bool) *Header {
	return &Header{
		Version:    FLVVersion,
		HasAudio:   hasAudio,
		HasVideo:   hasVideo,
		DataOffset: FLVHeaderSize,
	}
}

// Tag represents an FLV tag (audio, video, or script) to be encoded.
type Tag struct {
	Type      byte
	Timestamp uint32
	Data      []byte
}

// Bytes encodes the tag as FLV tag bytes.
// Format: tag type (1) + data size (3) + timestamp lower (3) + timestamp upper (1) + stream ID (3) + data (N) + previous tag size (4)
// Allocation: Creates new slice for complete tag, reuses data slice.
func (t *Tag) Bytes() []byte {
	dataSize := uint32(len(t.Data))

	// Total: 11-byte header + data + 4-byte previous tag size
	totalSize := TagHeaderSize + len(t.Data) + PreviousTagSizeLength
	result := make([]byte, totalSize)

	result[0] = t.Type

	result[1] = byte(dataSize >> 16)
	result[2] = byte(dataSize >> 8)
	result[3] = byte(dataSize)

	// Timestamp: lower 24 bits in bytes 4-6, upper 8 bits in byte 7
	result[4] = byte(t.Timestamp >> 16)
	result[5] = byte(t.Timestamp >> 8)
	result[6] = byte(t.Timestamp)
	result[7] = byte(t.Timestamp >> 24)

	// Stream ID (3 bytes, always 0)
	result[8] = 0
	result[9] = 0
	result[10] = 0

	copy(result[TagHeaderSize:], t.Data)

	prevSize := TagHeaderSize + dataSize
	tail := result[TagHeaderSize+len(t.Data):]
	tail[0] = byte(prevSize >> 24)
	tail[1] = byte(prevSize >> 16)
	tail[2] = byte(prevSize >> 8)
	tail[3] = byte(prevSize)

	return result
}

// NewTag creates a new FLV tag from type, timestamp, and data.
func NewTag(tagType byte, timestamp uint32, data []byte) *Tag {
	return &Tag{
		Type:      tagType,
		Timestamp: timestamp,
		Data:      data,
	}
}

// EncodeStream serialises a header, the leading zero previous tag size and the tags.
// Each tag carries its own trailing previous tag size, so the result is a complete stream.
func EncodeStream(h *Header, tags ...*Tag) []byte {
	out := h.Bytes()
	if pad := int(h.DataOffset) - len(out); pad > 0 {
		out = append(out, make([]byte, pad)...)
	}
	out = append(out, 0, 0, 0, 0)
	for _, t := range tags {
		out = append(out, t.Bytes()...)
	}
	return out
}
