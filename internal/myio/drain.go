// Package myio holds small I/O helpers shared by the parser internals and
// benchmarks.
package myio

import "io"

// Drain consumes r to EOF, discarding the data. It is the shared discard
// sink for streams whose bytes are no longer wanted but must keep flowing so
// the underlying connection does not stall.
func Drain(r io.Reader) error {
	_, err := io.Copy(io.Discard, r)
	return err
}
