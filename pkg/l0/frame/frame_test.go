package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	state := State{
		Joints:     [6]byte{10, 20, 30, 40, 50, 60},
		DigitalOut: [3]bool{true, false, true},
		Speed:      99,
	}
	f := Encode(state)
	require.Equal(t,
		[]byte{253, 10, 20, 30, 40, 50, 60, 0, 0, 0, 1, 0, 1, 99, 254},
		f[:])
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name   string
		in     []byte
		expect State
		reason InvalidReason
		fail   bool
	}{
		{
			name: "valid",
			in:   []byte{253, 10, 20, 30, 40, 50, 60, 0, 0, 0, 1, 0, 1, 99, 254},
			expect: State{
				Joints:     [6]byte{10, 20, 30, 40, 50, 60},
				DigitalOut: [3]bool{true, false, true},
				Speed:      99,
			},
		},
		{
			name: "nonzero bytes as true",
			in:   []byte{253, 0, 0, 0, 0, 0, 0, 7, 0, 255, 0, 2, 0, 0, 254},
			expect: State{
				DigitalIn:  [3]bool{true, false, true},
				DigitalOut: [3]bool{false, true, false},
			},
		},
		{name: "too short", in: []byte{1, 2, 3}, fail: true, reason: WrongLength},
		{name: "empty", in: nil, fail: true, reason: WrongLength},
		{
			name: "too long",
			in:   []byte{253, 10, 20, 30, 40, 50, 60, 0, 0, 0, 1, 0, 1, 99, 254, 0},
			fail: true, reason: WrongLength,
		},
		{
			name: "bad header",
			in:   []byte{252, 10, 20, 30, 40, 50, 60, 0, 0, 0, 1, 0, 1, 99, 254},
			fail: true, reason: BadHeader,
		},
		{
			name: "bad tail",
			in:   []byte{253, 10, 20, 30, 40, 50, 60, 0, 0, 0, 1, 0, 1, 99, 253},
			fail: true, reason: BadTail,
		},
		{
			// both markers wrong: header is checked before tail
			name: "bad header and tail",
			in:   []byte{0, 10, 20, 30, 40, 50, 60, 0, 0, 0, 1, 0, 1, 99, 0},
			fail: true, reason: BadHeader,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := Decode(tc.in)
			if tc.fail {
				var invalid *InvalidFrameError
				require.ErrorAs(t, err, &invalid)
				require.Equal(t, tc.reason, invalid.Reason)
				require.Equal(t, State{}, state)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, state)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	states := []State{
		{},
		{
			Joints:     [6]byte{10, 20, 30, 40, 50, 60},
			DigitalOut: [3]bool{true, false, true},
			Speed:      99,
		},
		{
			Joints:     [6]byte{255, 255, 255, 255, 255, 255},
			DigitalIn:  [3]bool{true, true, true},
			DigitalOut: [3]bool{true, true, true},
			Speed:      255,
		},
		{
			// marker byte values are legal payload
			Joints: [6]byte{253, 254, 0, 253, 254, 1},
			Speed:  253,
		},
	}
	// all flag combinations
	for bits := 0; bits < 64; bits++ {
		s := State{Joints: [6]byte{1, 2, 3, 4, 5, 6}, Speed: byte(bits)}
		for i := 0; i < 3; i++ {
			s.DigitalIn[i] = bits&(1<<i) != 0
			s.DigitalOut[i] = bits&(8<<i) != 0
		}
		states = append(states, s)
	}

	for _, s := range states {
		f := Encode(s)
		require.Equal(t, Header, f[0])
		require.Equal(t, Tail, f[Size-1])
		got, err := Decode(f[:])
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestInvalidFrameError(t *testing.T) {
	err := error(&InvalidFrameError{Reason: BadTail, Byte: 0x42})
	require.EqualError(t, err, "invalid frame: bad tail 0x42")
	var invalid *InvalidFrameError
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, "bad tail", invalid.Reason.String())
}
