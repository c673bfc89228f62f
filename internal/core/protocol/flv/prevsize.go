// If you are AI: This file implements the parse state and the previous-tag-size cross-check.

package flv

// ParseState is the long-lived state of one stream.
// AbsoluteOffset is the stream offset of the next unconsumed byte.
// PreviousTagSize is the value the next previous-tag-size field must carry.
type ParseState struct {
	AbsoluteOffset  uint64
	PreviousTagSize uint32
	pending         *tagState
}

// PendingField names the tag field the state machine is waiting for.
// Returns an empty string when no tag is in progress.
func (s ParseState) PendingField() string {
	if s.pending == nil {
		return ""
	}
	return s.pending.step.String()
}

// previousTagSizeSpec describes the 4-byte size field preceding each tag.
var previousTagSizeSpec = FieldSpec{Name: "previousTagSize", Desc: "equals 11 + previous data size", Kind: FieldU32}

// checkPreviousTagSize reads the size field at the start of win and compares it
// with st.PreviousTagSize. Returns the bytes consumed.
// Nothing in st is modified; the caller advances the offset.
func checkPreviousTagSize(win []byte, st *ParseState) (int, error) {
	v, _, n, err := ReadField(win, 0, previousTagSizeSpec)
	if err != nil {
		return 0, rebase(err, st.AbsoluteOffset)
	}
	if v != st.PreviousTagSize {
		return 0, newError(KindTagSizeMismatch, st.AbsoluteOffset, previousTagSizeSpec.Name, uint64(st.PreviousTagSize), uint64(v))
	}
	return n, nil
}
