// If you are AI: This file implements the script-data object decoder.
// Entry boundaries are located with an explicit frame stack and a remaining-byte bound,
// so nesting depth in the input never grows the call stack.

package flv

import (
	"flvdemux/internal/core/protocol/amf0"
)

// ScriptData summarises a decoded script-data payload.
// Name is the first top-level entry when it is a string (usually "onMetaData").
// Entries counts top-level entries of the object list.
type ScriptData struct {
	Name             string
	Entries          int
	ObjectListLength uint32
}

// DecodeScriptData validates a script-data payload: an object list of
// len(payload)-3 bytes followed by the u24 end marker 9.
// at is the absolute stream offset of payload[0].
func DecodeScriptData(payload []byte, at uint64) (ScriptData, error) {
	if len(payload) < scriptDataEndMarkerSize {
		return ScriptData{}, newError(KindScriptDataOverrun, at, "dataSize", scriptDataEndMarkerSize, uint64(len(payload)))
	}
	limit := len(payload) - scriptDataEndMarkerSize

	w := scriptWalker{buf: payload[:limit], at: at}
	sd, err := w.walk()
	if err != nil {
		return ScriptData{}, err
	}

	marker, _, _ := ReadU24(payload, limit)
	if marker != ScriptDataEndMarker {
		return ScriptData{}, newError(KindMissingEndMarker, at+uint64(limit), "endMarker", ScriptDataEndMarker, uint64(marker))
	}
	return sd, nil
}

// frameKind is the container type a frame is walking.
type frameKind uint8

const (
	frameList  frameKind = iota // top-level object list, ends at the bound
	frameArray                  // strict array, ends after remaining values
	framePairs                  // object, ECMA array or typed object, ends at 00 00 09
)

// frame is one open container.
type frame struct {
	kind      frameKind
	remaining uint32
}

// scriptWalker steps over AMF0 values in buf without materialising them.
type scriptWalker struct {
	buf []byte
	pos int
	at  uint64
}

// walk consumes the whole object list.
// An object or ECMA array directly inside the list that is still open when the
// bound is reached is closed by the tag's end marker.
func (w *scriptWalker) walk() (ScriptData, error) {
	var sd ScriptData
	stack := make([]frame, 1, 8)
	stack[0] = frame{kind: frameList}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		switch top.kind {
		case frameList:
			if w.pos == len(w.buf) {
				stack = stack[:len(stack)-1]
				continue
			}
			sd.Entries++
		case frameArray:
			if top.remaining == 0 {
				stack = stack[:len(stack)-1]
				continue
			}
			top.remaining--
		case framePairs:
			if w.pos == len(w.buf) && len(stack) == 2 {
				stack = stack[:len(stack)-1]
				continue
			}
			keyLen, err := w.u16()
			if err != nil {
				return ScriptData{}, err
			}
			if keyLen == 0 {
				end, err := w.u8()
				if err != nil {
					return ScriptData{}, err
				}
				if end != amf0.TypeObjectEnd {
					return ScriptData{}, newError(KindInvalidScriptData, w.at+uint64(w.pos-1), "objectEnd", amf0.TypeObjectEnd, uint64(end))
				}
				stack = stack[:len(stack)-1]
				continue
			}
			if err := w.skip(int(keyLen)); err != nil {
				return ScriptData{}, err
			}
		}

		start := w.pos
		marker, err := w.u8()
		if err != nil {
			return ScriptData{}, err
		}

		switch marker {
		case amf0.TypeNumber:
			err = w.skip(8)
		case amf0.TypeBoolean:
			err = w.skip(1)
		case amf0.TypeString:
			var n uint16
			if n, err = w.u16(); err == nil {
				if err = w.skip(int(n)); err == nil && len(stack) == 1 && sd.Entries == 1 {
					sd.Name = string(w.buf[w.pos-int(n) : w.pos])
				}
			}
		case amf0.TypeNull, amf0.TypeUndefined, amf0.TypeUnsupported:
		case amf0.TypeReference:
			err = w.skip(2)
		case amf0.TypeObject:
			stack = append(stack, frame{kind: framePairs})
		case amf0.TypeECMAArray:
			if err = w.skip(4); err == nil {
				stack = append(stack, frame{kind: framePairs})
			}
		case amf0.TypeTypedObject:
			var n uint16
			if n, err = w.u16(); err == nil {
				if err = w.skip(int(n)); err == nil {
					stack = append(stack, frame{kind: framePairs})
				}
			}
		case amf0.TypeStrictArray:
			var count uint32
			if count, err = w.u32(); err == nil {
				stack = append(stack, frame{kind: frameArray, remaining: count})
			}
		case amf0.TypeDate:
			err = w.skip(10)
		case amf0.TypeLongString, amf0.TypeXMLDocument:
			var n uint32
			if n, err = w.u32(); err == nil {
				err = w.skip(int(n))
			}
		default:
			return ScriptData{}, newError(KindInvalidScriptData, w.at+uint64(start), "valueMarker", 0, uint64(marker))
		}
		if err != nil {
			return ScriptData{}, err
		}
	}

	sd.ObjectListLength = uint32(len(w.buf))
	return sd, nil
}

// need fails with KindScriptDataOverrun when n more bytes would pass the bound.
func (w *scriptWalker) need(n int) error {
	if n < 0 || w.pos+n > len(w.buf) {
		return newError(KindScriptDataOverrun, w.at+uint64(w.pos), "objectList", uint64(len(w.buf)), uint64(w.pos)+uint64(n))
	}
	return nil
}

func (w *scriptWalker) skip(n int) error {
	if err := w.need(n); err != nil {
		return err
	}
	w.pos += n
	return nil
}

func (w *scriptWalker) u8() (uint8, error) {
	if err := w.need(1); err != nil {
		return 0, err
	}
	v := w.buf[w.pos]
	w.pos++
	return v, nil
}

func (w *scriptWalker) u16() (uint16, error) {
	if err := w.need(2); err != nil {
		return 0, err
	}
	v := uint16(w.buf[w.pos])<<8 | uint16(w.buf[w.pos+1])
	w.pos += 2
	return v, nil
}

func (w *scriptWalker) u32() (uint32, error) {
	v, n, err := ReadU32(w.buf, w.pos)
	if err != nil {
		return 0, w.need(4)
	}
	w.pos += n
	return v, nil
}
