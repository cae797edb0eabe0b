package frame

// State is the robot state exchanged in each frame.
// Joint magnitudes and speed are raw controller units (0-255); this layer
// does not interpret them.
type State struct {
	Joints     [6]byte `json:"joints"`
	DigitalIn  [3]bool `json:"di"`
	DigitalOut [3]bool `json:"do"`
	Speed      byte    `json:"speed"`
}
