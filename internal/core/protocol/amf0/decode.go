// If you are AI: This file implements AMF0 decoding for script-data payloads.
// Values decode into Go types: float64, bool, string, nil, Object, ECMAArray, Array, Date.

package amf0

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrUnexpectedType = errors.New("unexpected AMF0 type")
	ErrInvalidData    = errors.New("invalid AMF0 data")
	ErrTooDeep        = errors.New("AMF0 nesting too deep")
)

// MaxDepth bounds container nesting while decoding.
const MaxDepth = 64

// Decode reads and decodes a single AMF0 value from the reader.
// Returns the decoded value and any error.
func Decode(r io.Reader) (Value, error) {
	return decodeValue(r, 0)
}

// DecodeAll decodes consecutive values until buf is exhausted.
// A script-data payload decodes to its name followed by its data, e.g. "onMetaData" and an ECMAArray.
func DecodeAll(buf []byte) ([]Value, error) {
	r := bytes.NewReader(buf)
	vals := make([]Value, 0, 2)
	for r.Len() > 0 {
		v, err := decodeValue(r, 0)
		if err != nil {
			return vals, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// decodeValue decodes one value at the given nesting depth.
func decodeValue(r io.Reader, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}

	var typeMarker byte
	if err := binary.Read(r, binary.BigEndian, &typeMarker); err != nil {
		return nil, err
	}

	switch typeMarker {
	case TypeNumber:
		return decodeNumber(r)
	case TypeBoolean:
		return decodeBoolean(r)
	case TypeString:
		return decodeString(r)
	case TypeLongString, TypeXMLDocument:
		return decodeLongString(r)
	case TypeNull, TypeUndefined, TypeUnsupported:
		return nil, nil
	case TypeReference:
		var ref uint16
		err := binary.Read(r, binary.BigEndian, &ref)
		return float64(ref), err
	case TypeObject:
		return decodeObject(r, depth)
	case TypeTypedObject:
		// Class name is dropped; the members decode as a plain object.
		if _, err := decodeString(r); err != nil {
			return nil, err
		}
		return decodeObject(r, depth)
	case TypeECMAArray:
		return decodeECMAArray(r, depth)
	case TypeStrictArray:
		return decodeStrictArray(r, depth)
	case TypeDate:
		return decodeDate(r)
	default:
		return nil, ErrUnexpectedType
	}
}

// decodeNumber decodes an AMF0 number (double precision float64).
func decodeNumber(r io.Reader) (float64, error) {
	var num float64
	err := binary.Read(r, binary.BigEndian, &num)
	return num, err
}

// decodeBoolean decodes an AMF0 boolean.
func decodeBoolean(r io.Reader) (bool, error) {
	var b byte
	if err := binary.Read(r, binary.BigEndian, &b); err != nil {
		return false, err
	}
	return b != 0, nil
}

// decodeString decodes an AMF0 string.
func decodeString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// decodeLongString decodes a string with a 32-bit length.
func decodeLongString(r io.Reader) (string, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(length)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// decodePairs reads key/value pairs until the object end marker.
// With openEnded set, a clean io.EOF where the next key length belongs also ends the pairs.
// Any other short read is io.ErrUnexpectedEOF.
func decodePairs(r io.Reader, depth int, obj map[string]Value, openEnded bool) error {
	for {
		var keyLen uint16
		if err := binary.Read(r, binary.BigEndian, &keyLen); err != nil {
			if err == io.EOF && openEnded {
				return nil
			}
			return unexpectedEOF(err)
		}
		if keyLen == 0 {
			// Object end marker
			var endMarker byte
			if err := binary.Read(r, binary.BigEndian, &endMarker); err != nil {
				return unexpectedEOF(err)
			}
			if endMarker != TypeObjectEnd {
				return ErrInvalidData
			}
			return nil
		}
		keyBuf := make([]byte, keyLen)
		if _, err := io.ReadFull(r, keyBuf); err != nil {
			return unexpectedEOF(err)
		}
		value, err := decodeValue(r, depth+1)
		if err != nil {
			return unexpectedEOF(err)
		}
		obj[string(keyBuf)] = value
	}
}

// decodeObject decodes an AMF0 object.
func decodeObject(r io.Reader, depth int) (Object, error) {
	obj := make(Object)
	if err := decodePairs(r, depth, obj, false); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeECMAArray decodes an AMF0 ECMA array.
// The associative count is advisory; pairs run until the end marker.
// NOTE: Some muxers omit the trailing end marker when the array closes the payload,
// so io.EOF in place of a key ends the array. A pair cut short is still an error.
func decodeECMAArray(r io.Reader, depth int) (ECMAArray, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	arr := make(ECMAArray, min(count, 1024))
	if err := decodePairs(r, depth, arr, true); err != nil {
		return nil, err
	}
	return arr, nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// decodeStrictArray decodes an AMF0 strict array.
func decodeStrictArray(r io.Reader, depth int) (Array, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	arr := make(Array, 0, min(count, 1024))
	for i := uint32(0); i < count; i++ {
		v, err := decodeValue(r, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

// decodeDate decodes an AMF0 date.
func decodeDate(r io.Reader) (Date, error) {
	var d Date
	if err := binary.Read(r, binary.BigEndian, &d.Millis); err != nil {
		return Date{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &d.Timezone); err != nil {
		return Date{}, err
	}
	return d, nil
}
