package frame

import "fmt"

// InvalidReason classifies why a buffer is not a valid frame.
type InvalidReason int

// Invalid frame reasons.
const (
	WrongLength InvalidReason = iota
	BadHeader
	BadTail
)

// String implements fmt.Stringer.
func (r InvalidReason) String() string {
	switch r {
	case WrongLength:
		return "wrong length"
	case BadHeader:
		return "bad header"
	case BadTail:
		return "bad tail"
	}
	return fmt.Sprintf("reason %d", int(r))
}

// InvalidFrameError reports a structurally invalid frame.
type InvalidFrameError struct {
	Reason InvalidReason
	Len    int  // observed length, set for WrongLength
	Byte   byte // offending marker byte, set for BadHeader/BadTail
}

// Error implements error.
func (e *InvalidFrameError) Error() string {
	switch e.Reason {
	case WrongLength:
		return fmt.Sprintf("invalid frame: wrong length %d", e.Len)
	case BadHeader:
		return fmt.Sprintf("invalid frame: bad header 0x%02x", e.Byte)
	case BadTail:
		return fmt.Sprintf("invalid frame: bad tail 0x%02x", e.Byte)
	}
	return "invalid frame"
}
