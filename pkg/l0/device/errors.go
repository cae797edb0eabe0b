package device

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized indicates an operation was attempted before a
	// device was opened.
	ErrNotInitialized = errors.New("device not initialized")
	// ErrReadTimeout indicates the read deadline expired before a full
	// frame arrived.
	ErrReadTimeout = errors.New("read timeout")
)

// OpenError reports a failure to open the device.
type OpenError struct {
	Path string
	Err  error
}

// Error implements error.
func (e *OpenError) Error() string { return fmt.Sprintf("open %s: %v", e.Path, e.Err) }

// Unwrap exposes the underlying error.
func (e *OpenError) Unwrap() error { return e.Err }

// WriteError reports a failed or short write.
type WriteError struct {
	Err error
}

// Error implements error.
func (e *WriteError) Error() string { return fmt.Sprintf("write: %v", e.Err) }

// Unwrap exposes the underlying error.
func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a read failure other than a timeout.
type ReadError struct {
	Err error
}

// Error implements error.
func (e *ReadError) Error() string { return fmt.Sprintf("read: %v", e.Err) }

// Unwrap exposes the underlying error.
func (e *ReadError) Unwrap() error { return e.Err }
