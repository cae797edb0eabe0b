// Package frame implements the L0 wire protocol of the arm controller.
package frame

// The L0 protocol exchanges a complete robot state in every transmission
// using a fixed 15-byte frame delimited by reserved marker bytes.
// It carries no sequence numbers and no bit verification (e.g. CRC/Checksum)
// for simplicity and to be lightweighted; the receiver recovers frame
// alignment by scanning for the header marker.
//
// Producer/Consumer: arm controller firmware and host bridge, symmetrically.
