// If you are AI: This file defines AMF0 type markers and the Go types values decode into.

package amf0

// AMF0 type markers
const (
	TypeNumber      = 0
	TypeBoolean     = 1
	TypeString      = 2
	TypeObject      = 3
	TypeMovieClip   = 4
	TypeNull        = 5
	TypeUndefined   = 6
	TypeReference   = 7
	TypeECMAArray   = 8
	TypeObjectEnd   = 9
	TypeStrictArray = 10
	TypeDate        = 11
	TypeLongString  = 12
	TypeUnsupported = 13
	TypeRecordSet   = 14
	TypeXMLDocument = 15
	TypeTypedObject = 16
	TypeAVMPlus     = 17
)

// Value represents a decoded AMF0 value.
type Value interface{}

// Object represents an AMF0 object (key-value pairs).
type Object map[string]Value

// ECMAArray represents an AMF0 ECMA (associative) array.
// Script-data tags carry onMetaData as an ECMA array.
type ECMAArray map[string]Value

// Array represents an AMF0 strict array.
type Array []Value

// Date represents an AMF0 date: milliseconds since the epoch plus a timezone offset in minutes.
type Date struct {
	Millis   float64
	Timezone int16
}
