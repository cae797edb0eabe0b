// Package device owns the single physical serial handle shared by all
// callers and serializes every interaction with it.
package device

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"

	"github.com/robotalks/armlink/pkg/l0/frame"
)

// Port is the surface of a serial port the connection uses.
// go.bug.st/serial.Port satisfies it.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// DialFunc opens a port. Tests inject in-memory ports through it.
type DialFunc func(path string, mode *serial.Mode) (Port, error)

// Default timeouts. ReadTimeout bounds each individual read on the port;
// ScanTimeout bounds a whole ReadFrame call including the header scan.
const (
	DefaultReadTimeout = 100 * time.Millisecond
	DefaultScanTimeout = 2 * time.Second
)

// Conn holds zero or one open serial handle. The lock covers the entire
// body of every operation, so two concurrent calls never interleave bytes
// on the wire.
type Conn struct {
	ReadTimeout time.Duration
	ScanTimeout time.Duration
	Dial        DialFunc

	lock sync.Mutex
	port Port
}

// NewConn creates an unopened Conn with default timeouts.
func NewConn() *Conn {
	return &Conn{
		ReadTimeout: DefaultReadTimeout,
		ScanTimeout: DefaultScanTimeout,
	}
}

func dialSerial(path string, mode *serial.Mode) (Port, error) {
	return serial.Open(path, mode)
}

// Open opens the named device at baud (8N1) with the per-read timeout and
// installs it as the current handle. A previously open handle is closed
// before the new one is installed so two live handles never coexist.
func (c *Conn) Open(path string, baud int) error {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	dial := c.Dial
	if dial == nil {
		dial = dialSerial
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.port != nil {
		if err := c.port.Close(); err != nil {
			glog.Warningf("close previous handle: %v", err)
		}
		c.port = nil
	}
	port, err := dial(path, mode)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	if err = port.SetReadTimeout(c.readTimeout()); err != nil {
		port.Close()
		return &OpenError{Path: path, Err: err}
	}
	c.port = port
	glog.V(1).Infof("opened %s @%d", path, baud)
	return nil
}

// Close releases the current handle, if any.
func (c *Conn) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	return err
}

// WriteAll writes b completely, or fails. A short write without an error
// from the port is reported as a WriteError wrapping io.ErrShortWrite.
func (c *Conn) WriteAll(b []byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.port == nil {
		return ErrNotInitialized
	}
	for len(b) > 0 {
		n, err := c.port.Write(b)
		if err != nil {
			return &WriteError{Err: err}
		}
		if n <= 0 {
			return &WriteError{Err: io.ErrShortWrite}
		}
		b = b[n:]
	}
	return nil
}

// ReadFrame reads one complete frame. It scans the stream byte-by-byte,
// discarding everything before the next header marker, then reads the
// remaining 14 bytes and validates the tail marker. The scan exists
// because the stream is not self-delimiting: a late-attaching reader or a
// garbled frame leaves it mid-frame, and the header marker is the only
// alignment signal. The whole call, scan included, is bounded by
// ScanTimeout and holds the lock until it returns.
func (c *Conn) ReadFrame() (frame.Frame, error) {
	var f frame.Frame
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.port == nil {
		return f, ErrNotInitialized
	}
	deadline := time.Now().Add(c.scanTimeout())
	discarded := 0
	for {
		if err := c.readFull(f[:1], deadline); err != nil {
			return f, err
		}
		if f[0] == frame.Header {
			break
		}
		// A line streaming pure garbage never times out a read, so the
		// deadline is checked per discarded byte as well.
		if discarded++; !time.Now().Before(deadline) {
			glog.V(2).Infof("resync: gave up after %d bytes", discarded)
			return f, ErrReadTimeout
		}
	}
	if discarded > 0 {
		glog.V(2).Infof("resync: discarded %d bytes", discarded)
	}
	if err := c.readFull(f[1:], deadline); err != nil {
		return f, err
	}
	if f[frame.Size-1] != frame.Tail {
		return f, &frame.InvalidFrameError{Reason: frame.BadTail, Byte: f[frame.Size-1]}
	}
	return f, nil
}

// readFull fills buf from the port. Each underlying read is bounded by the
// port's read timeout; a timed-out read yields n==0 (or a timeout error on
// some platforms) and is retried until deadline.
func (c *Conn) readFull(buf []byte, deadline time.Time) error {
	for off := 0; off < len(buf); {
		n, err := c.port.Read(buf[off:])
		if err != nil {
			if !os.IsTimeout(err) {
				return &ReadError{Err: err}
			}
			n = 0
		}
		if n == 0 {
			if !time.Now().Before(deadline) {
				return ErrReadTimeout
			}
			continue
		}
		off += n
	}
	return nil
}

func (c *Conn) readTimeout() time.Duration {
	if c.ReadTimeout > 0 {
		return c.ReadTimeout
	}
	return DefaultReadTimeout
}

func (c *Conn) scanTimeout() time.Duration {
	if c.ScanTimeout > 0 {
		return c.ScanTimeout
	}
	return DefaultScanTimeout
}
