// If you are AI: This file defines FLV container constants and tag types.

package flv

// FLV file signature
const FLVSignature = "FLV"

// FLV version
const FLVVersion = 1

// FLV header size
const FLVHeaderSize = 9

// TagHeaderSize is the fixed prefix of every tag: type, size, timestamp, extension, stream id.
const TagHeaderSize = 11

// PreviousTagSizeLength is the width of the size field preceding every tag.
const PreviousTagSizeLength = 4

// DefaultMaxHeaderPadding bounds the bytes a header's data offset may skip past the header.
const DefaultMaxHeaderPadding = 1 << 20

// Previous tag size (4 bytes) before first tag
const FirstPreviousTagSize = 0

// ScriptDataEndMarker terminates the object list of a script-data tag (u24).
const ScriptDataEndMarker = 9

// scriptDataEndMarkerSize is the byte width of ScriptDataEndMarker.
const scriptDataEndMarkerSize = 3

// Tag type codes as they appear on the wire.
const (
	TagTypeAudio  = 8
	TagTypeVideo  = 9
	TagTypeScript = 18
)

// TagType identifies the kind of payload a tag carries.
type TagType uint8

// Known tag types.
const (
	Audio  TagType = TagTypeAudio
	Video  TagType = TagTypeVideo
	Script TagType = TagTypeScript
)

// String returns a lowercase name for the tag type.
func (t TagType) String() string {
	switch t {
	case Audio:
		return "audio"
	case Video:
		return "video"
	case Script:
		return "script"
	default:
		return "unknown"
	}
}

// tagTypeOf maps a wire value onto a TagType.
// Returns false for values outside the three defined types.
func tagTypeOf(v uint8) (TagType, bool) {
	switch v {
	case TagTypeAudio:
		return Audio, true
	case TagTypeVideo:
		return Video, true
	case TagTypeScript:
		return Script, true
	default:
		return 0, false
	}
}
