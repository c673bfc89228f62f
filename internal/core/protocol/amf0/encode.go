// If you are AI: This file implements AMF0 encoding for script-data payloads.
// Only encodes the types that appear in FLV metadata.

package amf0

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
)

// Encode writes an AMF0 value to the writer.
// Integer kinds are written as numbers; unknown types are written as null.
func Encode(w io.Writer, val Value) error {
	switch v := val.(type) {
	case float64:
		return encodeNumber(w, v)
	case int:
		return encodeNumber(w, float64(v))
	case int64:
		return encodeNumber(w, float64(v))
	case uint32:
		return encodeNumber(w, float64(v))
	case bool:
		return encodeBoolean(w, v)
	case string:
		return encodeString(w, v)
	case nil:
		return encodeNull(w)
	case Object:
		return encodeObject(w, v)
	case ECMAArray:
		return encodeECMAArray(w, v)
	case Array:
		return encodeArray(w, v)
	default:
		return encodeNull(w)
	}
}

// EncodeAll encodes values back to back, the layout of a script-data object list.
func EncodeAll(vals ...Value) ([]byte, error) {
	var buf bytes.Buffer
	for _, v := range vals {
		if err := Encode(&buf, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// encodeNumber encodes an AMF0 number.
func encodeNumber(w io.Writer, num float64) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeNumber)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, num)
}

// encodeBoolean encodes an AMF0 boolean.
func encodeBoolean(w io.Writer, b bool) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeBoolean)); err != nil {
		return err
	}
	var val byte
	if b {
		val = 1
	}
	return binary.Write(w, binary.BigEndian, val)
}

// encodeString encodes an AMF0 string, or a long string past 65535 bytes.
func encodeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		if err := binary.Write(w, binary.BigEndian, byte(TypeLongString)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
			return err
		}
		_, err := io.WriteString(w, s)
		return err
	}
	if err := binary.Write(w, binary.BigEndian, byte(TypeString)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// encodeNull encodes an AMF0 null.
func encodeNull(w io.Writer) error {
	return binary.Write(w, binary.BigEndian, byte(TypeNull))
}

// encodeObject encodes an AMF0 object.
func encodeObject(w io.Writer, obj Object) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeObject)); err != nil {
		return err
	}
	return encodePairs(w, obj)
}

// encodeECMAArray encodes an AMF0 ECMA array with its associative count.
func encodeECMAArray(w io.Writer, arr ECMAArray) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeECMAArray)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(arr))); err != nil {
		return err
	}
	return encodePairs(w, arr)
}

// encodePairs writes key/value pairs in key order followed by the object end marker.
func encodePairs(w io.Writer, pairs map[string]Value) error {
	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := binary.Write(w, binary.BigEndian, uint16(len(key))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, key); err != nil {
			return err
		}
		if err := Encode(w, pairs[key]); err != nil {
			return err
		}
	}
	// Object end marker
	if err := binary.Write(w, binary.BigEndian, uint16(0)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, byte(TypeObjectEnd))
}

// encodeArray encodes an AMF0 strict array.
func encodeArray(w io.Writer, arr Array) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeStrictArray)); err != nil {
		return err
	}
	count := uint32(len(arr))
	if err := binary.Write(w, binary.BigEndian, count); err != nil {
		return err
	}
	for _, val := range arr {
		if err := Encode(w, val); err != nil {
			return err
		}
	}
	return nil
}
