// If you are AI: This file implements FLV file header validation.
// FLV header is read once at the start of the stream.

package flv

// Header field names used in errors and bit values.
const (
	fieldSignature      = "signature"
	fieldVersion        = "version"
	fieldFlags          = "typeFlags"
	fieldFlagsReserved  = "typeFlagsReserved"
	fieldFlagsAudio     = "typeFlagsAudio"
	fieldFlagsReserved2 = "typeFlagsReserved2"
	fieldFlagsVideo     = "typeFlagsVideo"
	fieldDataOffset     = "dataOffset"
)

// headerFlagBits is the bit layout of header byte 4.
var headerFlagBits = []BitField{
	{Name: fieldFlagsReserved, Pos: 0, Width: 5, Reserved: true},
	{Name: fieldFlagsAudio, Pos: 5, Width: 1},
	{Name: fieldFlagsReserved2, Pos: 6, Width: 1, Reserved: true},
	{Name: fieldFlagsVideo, Pos: 7, Width: 1},
}

// headerLayout describes the 9-byte file header in wire order.
var headerLayout = []FieldSpec{
	{Name: fieldSignature, Desc: "should always be 'F'", Kind: FieldU8, Exact: true, Want: 'F', Fail: KindInvalidSignature},
	{Name: fieldSignature, Desc: "should always be 'L'", Kind: FieldU8, Exact: true, Want: 'L', Fail: KindInvalidSignature},
	{Name: fieldSignature, Desc: "should always be 'V'", Kind: FieldU8, Exact: true, Want: 'V', Fail: KindInvalidSignature},
	{Name: fieldVersion, Desc: "is file version", Kind: FieldU8},
	{Name: fieldFlags, Desc: "contains type flags", Kind: FieldBits, Bits: headerFlagBits},
	{Name: fieldDataOffset, Desc: "shows offset in bytes", Kind: FieldU32},
}

// Header represents an FLV file header.
type Header struct {
	Version    uint8
	HasAudio   bool
	HasVideo   bool
	DataOffset uint32
}

// ParseHeader validates the first 9 bytes of a stream.
// buf must start at stream offset 0, so error offsets are absolute.
// DataOffset is recorded but not range-checked here.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < FLVHeaderSize {
		return Header{}, ErrInsufficientData
	}

	var h Header
	off := 0
	for _, spec := range headerLayout {
		v, bits, n, err := ReadField(buf, off, spec)
		if err != nil {
			return Header{}, err
		}
		switch spec.Name {
		case fieldVersion:
			h.Version = uint8(v)
		case fieldFlags:
			h.HasAudio = bits[fieldFlagsAudio] == 1
			h.HasVideo = bits[fieldFlagsVideo] == 1
		case fieldDataOffset:
			h.DataOffset = v
		}
		off += n
	}
	return h, nil
}
