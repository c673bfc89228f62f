// If you are AI: This file contains unit tests for the field reader.

package flv

import (
	"errors"
	"testing"
)

func TestReadIntegers(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	v8, n, err := ReadU8(buf, 4)
	if err != nil || v8 != 0x05 || n != 1 {
		t.Errorf("ReadU8: got (%d, %d, %v)", v8, n, err)
	}

	v24, n, err := ReadU24(buf, 1)
	if err != nil || v24 != 0x020304 || n != 3 {
		t.Errorf("ReadU24: got (%#x, %d, %v)", v24, n, err)
	}

	v32, n, err := ReadU32(buf, 0)
	if err != nil || v32 != 0x01020304 || n != 4 {
		t.Errorf("ReadU32: got (%#x, %d, %v)", v32, n, err)
	}
}

func TestReadIntegersInsufficientData(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03}

	if _, _, err := ReadU8(buf, 3); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("ReadU8 past end: expected ErrInsufficientData, got %v", err)
	}
	if _, _, err := ReadU24(buf, 1); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("ReadU24 past end: expected ErrInsufficientData, got %v", err)
	}
	if _, _, err := ReadU32(buf, 0); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("ReadU32 past end: expected ErrInsufficientData, got %v", err)
	}
	if _, _, err := ReadU8(buf, -1); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("ReadU8 negative offset: expected ErrInsufficientData, got %v", err)
	}
}

func TestReadBits(t *testing.T) {
	values, err := ReadBits(0x05, headerFlagBits)
	if err != nil {
		t.Fatalf("ReadBits failed: %v", err)
	}
	if values[fieldFlagsAudio] != 1 || values[fieldFlagsVideo] != 1 {
		t.Errorf("Expected audio and video flags set, got %v", values)
	}
	if values[fieldFlagsReserved] != 0 || values[fieldFlagsReserved2] != 0 {
		t.Errorf("Expected reserved fields zero, got %v", values)
	}
}

func TestReadBitsMultiBitField(t *testing.T) {
	fields := []BitField{
		{Name: "high", Pos: 0, Width: 4},
		{Name: "low", Pos: 4, Width: 4, Reserved: true, Want: 0x0A},
	}
	values, err := ReadBits(0x3A, fields)
	if err != nil {
		t.Fatalf("ReadBits failed: %v", err)
	}
	if values["high"] != 0x03 || values["low"] != 0x0A {
		t.Errorf("Expected high=3 low=10, got %v", values)
	}

	_, err = ReadBits(0x3B, fields)
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindInvalidReservedBits {
		t.Fatalf("Expected InvalidReservedBits, got %v", err)
	}
	if e.Bit != 7 || e.Expected != 0 || e.Actual != 1 {
		t.Errorf("Expected bit 7 want 0 got 1, got bit %d want %d got %d", e.Bit, e.Expected, e.Actual)
	}
}

func TestReadFieldExact(t *testing.T) {
	spec := FieldSpec{Name: "streamId", Kind: FieldU24, Exact: true, Want: 0, Fail: KindInvalidStreamID}

	if _, _, _, err := ReadField([]byte{0xFF, 0, 0, 0}, 1, spec); err != nil {
		t.Errorf("Expected zero stream id to pass, got %v", err)
	}

	_, _, _, err := ReadField([]byte{0xFF, 0, 0, 1}, 1, spec)
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindInvalidStreamID {
		t.Fatalf("Expected InvalidStreamID, got %v", err)
	}
	if e.Offset != 1 || e.Actual != 1 {
		t.Errorf("Expected offset 1 actual 1, got offset %d actual %d", e.Offset, e.Actual)
	}
}

func TestReadFieldInvalidKind(t *testing.T) {
	_, _, _, err := ReadField([]byte{0x01, 0x02}, 1, FieldSpec{Name: "bogus", Kind: FieldKind(0)})

	if errors.Is(err, ErrInsufficientData) {
		t.Fatal("Unknown field kind must not suspend the stream")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindInvalidFieldSpec || !e.Fatal() {
		t.Fatalf("Expected fatal InvalidFieldSpec, got %v", err)
	}
	if e.Offset != 1 || e.Field != "bogus" {
		t.Errorf("Unexpected error details %+v", e)
	}
}

func TestReadBitsInvalidLayout(t *testing.T) {
	layouts := [][]BitField{
		{{Name: "wide", Pos: 6, Width: 4}},
		{{Name: "empty", Pos: 0, Width: 0}},
		{{Name: "past", Pos: 8, Width: 1}},
		{{Name: "ok", Pos: 0, Width: 4}, {Name: "overflow", Pos: 250, Width: 10}},
	}
	for _, fields := range layouts {
		_, err := ReadBits(0x00, fields)
		if !errors.Is(err, ErrInvalidFieldSpec) {
			t.Errorf("%+v: expected InvalidFieldSpec, got %v", fields, err)
		}
	}
}
