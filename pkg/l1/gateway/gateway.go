// Package gateway is the host-facing surface of the bridge. It composes
// the device connection and the frame codec and is the sole boundary
// translating internal errors into caller-facing ones.
package gateway

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/armlink/pkg/l0/device"
	"github.com/robotalks/armlink/pkg/l0/frame"
)

// Gateway is a stateless facade over one shared device connection.
// All methods block until completion, error, or timeout; concurrency is
// serialized by the connection itself.
type Gateway struct {
	Conn *device.Conn
}

// New creates a Gateway over a fresh, unopened connection.
func New() *Gateway {
	return &Gateway{Conn: device.NewConn()}
}

// Initialize opens (or re-opens) the device at path with the given baud
// rate.
func (g *Gateway) Initialize(path string, baud int) error {
	if err := g.Conn.Open(path, baud); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	glog.Infof("initialized %s @%d", path, baud)
	return nil
}

// SendState encodes the state and writes the frame to the device.
func (g *Gateway) SendState(s frame.State) error {
	f := frame.Encode(s)
	if err := g.Conn.WriteAll(f[:]); err != nil {
		return fmt.Errorf("send state: %w", err)
	}
	glog.V(2).Infof("sent state %+v", s)
	return nil
}

// ReadState reads one frame from the device and decodes it. Either a
// complete valid state or an error is returned, never a partial record.
func (g *Gateway) ReadState() (frame.State, error) {
	f, err := g.Conn.ReadFrame()
	if err != nil {
		return frame.State{}, fmt.Errorf("read state: %w", err)
	}
	s, err := frame.Decode(f[:])
	if err != nil {
		return frame.State{}, fmt.Errorf("read state: %w", err)
	}
	glog.V(2).Infof("read state %+v", s)
	return s, nil
}

// ListPorts enumerates serial device paths. Pure passthrough to the host
// OS, exposed here so collaborators need only the gateway.
func (g *Gateway) ListPorts() ([]string, error) {
	ports, err := device.ListPorts()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	return ports, nil
}

// Close releases the device handle.
func (g *Gateway) Close() error {
	return g.Conn.Close()
}
