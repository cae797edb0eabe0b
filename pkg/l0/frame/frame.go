package frame

// Wire layout.
const (
	// Size is the exact length of every frame.
	Size = 15
	// Header is the reserved marker at offset 0.
	Header byte = 0xfd
	// Tail is the reserved marker at offset 14.
	Tail byte = 0xfe
)

// Frame is a single encoded wire frame.
type Frame [Size]byte

// Encode packs the state into a wire frame.
func Encode(s State) Frame {
	var f Frame
	f[0] = Header
	copy(f[1:7], s.Joints[:])
	for i, v := range s.DigitalIn {
		f[7+i] = boolByte(v)
	}
	for i, v := range s.DigitalOut {
		f[10+i] = boolByte(v)
	}
	f[13] = s.Speed
	f[14] = Tail
	return f
}

// Decode validates the buffer and unpacks the state.
// Length is checked first, then the header marker; the tail marker is the
// last gate. Boolean fields are true iff the wire byte is non-zero.
func Decode(b []byte) (State, error) {
	var s State
	if len(b) != Size {
		return s, &InvalidFrameError{Reason: WrongLength, Len: len(b)}
	}
	if b[0] != Header {
		return s, &InvalidFrameError{Reason: BadHeader, Byte: b[0]}
	}
	if b[Size-1] != Tail {
		return s, &InvalidFrameError{Reason: BadTail, Byte: b[Size-1]}
	}
	copy(s.Joints[:], b[1:7])
	for i := range s.DigitalIn {
		s.DigitalIn[i] = b[7+i] != 0
	}
	for i := range s.DigitalOut {
		s.DigitalOut[i] = b[10+i] != 0
	}
	s.Speed = b[13]
	return s, nil
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
