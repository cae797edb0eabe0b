package device

import "go.bug.st/serial"

// ListPorts enumerates the serial device paths known to the host OS.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}
