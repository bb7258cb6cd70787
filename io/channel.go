// Package io provides the I/O collaborators of the Universal Machine: the
// byte-oriented console channel (Tape) used by the input and output
// instructions, and the program image loader (Rom) that supplies the
// initial contents of segment 0.
package io

// Channel defines the interface for the console channel of the machine.
// Channels operate at the byte level.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive reads the next byte. ok is false at end of stream.
	Receive() (value byte, ok bool)
	// Send writes a single byte to the channel.
	Send(value byte) error
}
