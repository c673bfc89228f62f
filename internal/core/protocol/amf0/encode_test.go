// If you are AI: This file tests AMF0 encoding and decoding of script-data values.
package amf0

import (
	"bytes"
	"io"
	"testing"
)

// TestEncodeAll_Sequential verifies that EncodeAll writes values back to back
// without wrapping them in a container. Script-data payloads start with the
// first value's type marker (0x02 for the "onMetaData" name).
func TestEncodeAll_Sequential(t *testing.T) {
	body, err := EncodeAll("onMetaData", ECMAArray{"duration": float64(10)})
	if err != nil {
		t.Fatalf("EncodeAll failed: %v", err)
	}

	if body[0] != TypeString {
		t.Fatalf("First byte should be 0x02 (TypeString), got 0x%02x", body[0])
	}
	name := "onMetaData"
	if string(body[3:3+len(name)]) != name {
		t.Errorf("Expected %q after type marker, got %q", name, string(body[3:3+len(name)]))
	}
	if body[3+len(name)] != TypeECMAArray {
		t.Errorf("Expected ECMA array marker after name, got 0x%02x", body[3+len(name)])
	}

	// Payload ends with the object end sequence 00 00 09
	if !bytes.HasSuffix(body, []byte{0x00, 0x00, TypeObjectEnd}) {
		t.Errorf("Expected payload to end with 00 00 09, got % x", body[len(body)-3:])
	}
}

func TestDecodeAll_Metadata(t *testing.T) {
	body, err := EncodeAll("onMetaData", ECMAArray{
		"duration":  float64(12.5),
		"width":     1280,
		"stereo":    true,
		"encoder":   "Lavf58",
		"keyframes": Object{"times": Array{float64(0), float64(2)}},
	})
	if err != nil {
		t.Fatalf("EncodeAll failed: %v", err)
	}

	vals, err := DecodeAll(body)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(vals) != 2 {
		t.Fatalf("Expected 2 values, got %d", len(vals))
	}
	if vals[0] != "onMetaData" {
		t.Errorf("Expected name onMetaData, got %v", vals[0])
	}

	meta, ok := vals[1].(ECMAArray)
	if !ok {
		t.Fatalf("Expected ECMAArray, got %T", vals[1])
	}
	if meta["duration"] != float64(12.5) {
		t.Errorf("Expected duration 12.5, got %v", meta["duration"])
	}
	if meta["width"] != float64(1280) {
		t.Errorf("Expected width 1280, got %v", meta["width"])
	}
	if meta["stereo"] != true {
		t.Errorf("Expected stereo true, got %v", meta["stereo"])
	}
	if meta["encoder"] != "Lavf58" {
		t.Errorf("Expected encoder Lavf58, got %v", meta["encoder"])
	}
	kf, ok := meta["keyframes"].(Object)
	if !ok {
		t.Fatalf("Expected keyframes object, got %T", meta["keyframes"])
	}
	times, ok := kf["times"].(Array)
	if !ok || len(times) != 2 || times[1] != float64(2) {
		t.Errorf("Expected times [0 2], got %v", kf["times"])
	}
}

func TestDecodeECMAArrayWithoutEndMarker(t *testing.T) {
	body, err := EncodeAll(ECMAArray{"width": float64(640)})
	if err != nil {
		t.Fatalf("EncodeAll failed: %v", err)
	}
	body = body[:len(body)-3]

	v, err := Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v.(ECMAArray)["width"] != float64(640) {
		t.Errorf("Expected width 640, got %v", v)
	}
}

func TestDecodeECMAArrayTruncatedPair(t *testing.T) {
	body, err := EncodeAll(ECMAArray{"width": float64(640)})
	if err != nil {
		t.Fatalf("EncodeAll failed: %v", err)
	}
	// marker(1) count(4) keyLen(2) "width"(5); value and end marker cut off
	cuts := map[string][]byte{
		"after key":       body[:12],
		"inside value":    body[:16],
		"inside key":      body[:9],
		"half key length": body[:6],
	}
	for name, cut := range cuts {
		if _, err := Decode(bytes.NewReader(cut)); err != io.ErrUnexpectedEOF {
			t.Errorf("%s: expected io.ErrUnexpectedEOF, got %v", name, err)
		}
	}
}

func TestDecodeObjectWithoutEndMarker(t *testing.T) {
	body, err := EncodeAll(Object{"width": float64(640)})
	if err != nil {
		t.Fatalf("EncodeAll failed: %v", err)
	}
	body = body[:len(body)-3]

	if _, err := Decode(bytes.NewReader(body)); err != io.ErrUnexpectedEOF {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecodeTooDeep(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < MaxDepth+2; i++ {
		buf.Write([]byte{TypeStrictArray, 0, 0, 0, 1})
	}
	buf.WriteByte(TypeNull)

	if _, err := Decode(&buf); err != ErrTooDeep {
		t.Errorf("Expected ErrTooDeep, got %v", err)
	}
}

func TestDecodeUnexpectedType(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{TypeAVMPlus})); err != ErrUnexpectedType {
		t.Errorf("Expected ErrUnexpectedType, got %v", err)
	}
}
