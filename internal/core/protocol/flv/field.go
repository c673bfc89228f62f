// If you are AI: This file implements the field reader: fixed-width big-endian integers and bit fields.
// Field layouts are described as data (FieldSpec) and decoded by one routine per primitive kind.

package flv

// FieldKind is the primitive encoding of a field.
type FieldKind uint8

// Field kinds.
const (
	FieldU8 FieldKind = iota + 1
	FieldU24
	FieldU32
	FieldBits
)

// Width returns the number of bytes the kind occupies.
func (k FieldKind) Width() int {
	switch k {
	case FieldU8, FieldBits:
		return 1
	case FieldU24:
		return 3
	case FieldU32:
		return 4
	default:
		return 0
	}
}

// BitField describes a run of bits inside one byte.
// Pos counts from the most significant bit (bit 0 = MSB).
// A Reserved field must carry the value Want.
type BitField struct {
	Name     string
	Pos      uint8
	Width    uint8
	Reserved bool
	Want     uint8
}

// BitValues maps bit field names to their decoded values.
type BitValues map[string]uint8

// FieldSpec describes one field of a fixed layout.
// When Exact is set the decoded value must equal Want, otherwise Fail is reported.
type FieldSpec struct {
	Name  string
	Desc  string
	Kind  FieldKind
	Exact bool
	Want  uint32
	Fail  Kind
	Bits  []BitField
}

// ReadU8 reads one byte at off.
func ReadU8(buf []byte, off int) (uint8, int, error) {
	if off < 0 || off+1 > len(buf) {
		return 0, 0, ErrInsufficientData
	}
	return buf[off], 1, nil
}

// ReadU24 reads a big-endian 24-bit unsigned integer at off.
func ReadU24(buf []byte, off int) (uint32, int, error) {
	if off < 0 || off+3 > len(buf) {
		return 0, 0, ErrInsufficientData
	}
	b := buf[off : off+3]
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), 3, nil
}

// ReadU32 reads a big-endian 32-bit unsigned integer at off.
func ReadU32(buf []byte, off int) (uint32, int, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, 0, ErrInsufficientData
	}
	b := buf[off : off+4]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), 4, nil
}

// ReadBits splits b into the given fields.
// Reserved fields are checked bit by bit; the first differing bit is reported
// as KindInvalidReservedBits with Offset 0 (callers position the error).
// A field that does not fit in one byte fails with KindInvalidFieldSpec.
func ReadBits(b byte, fields []BitField) (BitValues, error) {
	values := make(BitValues, len(fields))
	for _, f := range fields {
		if f.Width == 0 || f.Width > 8 || f.Pos > 7 || f.Pos+f.Width > 8 {
			return nil, &Error{Kind: KindInvalidFieldSpec, Field: f.Name, Bit: int(f.Pos), Actual: uint64(f.Width)}
		}
		shift := 8 - f.Pos - f.Width
		mask := byte(1<<f.Width - 1)
		v := (b >> shift) & mask

		if f.Reserved && v != f.Want {
			for i := uint8(0); i < f.Width; i++ {
				bit := f.Pos + i
				got := (b >> (7 - bit)) & 1
				want := (f.Want >> (f.Width - 1 - i)) & 1
				if got != want {
					return nil, &Error{
						Kind:     KindInvalidReservedBits,
						Field:    f.Name,
						Bit:      int(bit),
						Expected: uint64(want),
						Actual:   uint64(got),
					}
				}
			}
		}
		values[f.Name] = v
	}
	return values, nil
}

// ReadField decodes the field described by spec at off.
// For FieldBits the byte value is returned along with the split bit values.
// Errors carry Offset relative to buf.
func ReadField(buf []byte, off int, spec FieldSpec) (uint32, BitValues, int, error) {
	var (
		v   uint32
		n   int
		err error
	)
	switch spec.Kind {
	case FieldU8, FieldBits:
		var b uint8
		b, n, err = ReadU8(buf, off)
		v = uint32(b)
	case FieldU24:
		v, n, err = ReadU24(buf, off)
	case FieldU32:
		v, n, err = ReadU32(buf, off)
	default:
		return 0, nil, 0, newError(KindInvalidFieldSpec, uint64(off), spec.Name, 0, uint64(spec.Kind))
	}
	if err != nil {
		return 0, nil, 0, err
	}

	var bits BitValues
	if spec.Kind == FieldBits {
		bits, err = ReadBits(byte(v), spec.Bits)
		if err != nil {
			return 0, nil, 0, rebase(err, uint64(off))
		}
	}

	if spec.Exact && v != spec.Want {
		field := spec.Name
		if spec.Desc != "" {
			field += " " + spec.Desc
		}
		return 0, nil, 0, newError(spec.Fail, uint64(off), field, uint64(spec.Want), uint64(v))
	}
	return v, bits, n, nil
}

// rebase shifts a fatal *Error by base bytes. Other errors pass through.
func rebase(err error, base uint64) error {
	e, ok := err.(*Error)
	if !ok || !e.Fatal() {
		return err
	}
	return e.at(base + e.Offset)
}
