package io

import (
	"io"
)

// flusher is implemented by buffered outputs such as bufio.Writer.
type flusher interface {
	Flush() error
}

// Tape provides sequential console I/O for the machine.
// It wraps an io.Reader for input and io.Writer for output, one byte at a time.
type Tape struct {
	Input  io.Reader
	Output io.Writer
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive reads the next byte from the input stream. Any pending output is
// flushed first, so that a prompt is visible before the read blocks.
// ok is false at end of stream, on a read error, or with no input attached.
func (tc *Tape) Receive() (value byte, ok bool) {
	if tc.Input == nil {
		return
	}

	tc.Flush()

	var one [1]byte
	_, err := io.ReadFull(tc.Input, one[:])
	if err != nil {
		return
	}

	return one[0], true
}

// Send writes a byte to the output stream.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = tc.Output.Write([]byte{value})
	return
}

// Flush writes any output buffered by the output stream.
func (tc *Tape) Flush() (err error) {
	if fl, ok := tc.Output.(flusher); ok {
		err = fl.Flush()
	}
	return
}
