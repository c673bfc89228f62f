// If you are AI: This file tests the FLV stream encoders and tag type mapping.

package flv

import (
	"encoding/binary"
	"testing"
)

func TestEncodeStreamLayout(t *testing.T) {
	audio := NewTag(TagTypeAudio, 0x01ABCDEF, []byte{0xAF, 0x01, 0x02})
	video := NewTag(TagTypeVideo, 40, make([]byte, 10))
	data := EncodeStream(NewHeader(true, true), audio, video)

	want := FLVHeaderSize + 4 + (TagHeaderSize + 3 + 4) + (TagHeaderSize + 10 + 4)
	if len(data) != want {
		t.Fatalf("Expected %d bytes, got %d", want, len(data))
	}
	if prev := binary.BigEndian.Uint32(data[FLVHeaderSize:]); prev != 0 {
		t.Errorf("Expected leading previous tag size 0, got %d", prev)
	}

	tag := data[FLVHeaderSize+4:]
	if tag[4] != 0xAB || tag[5] != 0xCD || tag[6] != 0xEF || tag[7] != 0x01 {
		t.Errorf("Timestamp bytes % x, expected ab cd ef 01", tag[4:8])
	}
	if prev := binary.BigEndian.Uint32(tag[TagHeaderSize+3:]); prev != TagHeaderSize+3 {
		t.Errorf("Expected trailing size %d, got %d", TagHeaderSize+3, prev)
	}
	if prev := binary.BigEndian.Uint32(data[len(data)-4:]); prev != TagHeaderSize+10 {
		t.Errorf("Expected final trailing size %d, got %d", TagHeaderSize+10, prev)
	}

	events, err := Demux(data)
	if err != nil {
		t.Fatalf("Demux failed: %v", err)
	}
	if got := events[1].(TagParsed).Tag.Header.Timestamp; got != 0x01ABCDEF {
		t.Errorf("Expected timestamp 0x01ABCDEF, got 0x%X", got)
	}
}

func TestTagTypeOf(t *testing.T) {
	cases := []struct {
		wire uint8
		want TagType
		name string
	}{
		{TagTypeAudio, Audio, "audio"},
		{TagTypeVideo, Video, "video"},
		{TagTypeScript, Script, "script"},
	}
	for _, c := range cases {
		got, ok := tagTypeOf(c.wire)
		if !ok || got != c.want || got.String() != c.name {
			t.Errorf("tagTypeOf(%d) = %v, %v; expected %s", c.wire, got, ok, c.name)
		}
	}
	if _, ok := tagTypeOf(7); ok {
		t.Error("Expected wire value 7 to be rejected")
	}
}
