package cpu

import (
	"errors"

	"github.com/ezrec/um/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("halted"))
	ErrFaulted        = errors.New(f("faulted"))
	ErrIpBounds       = errors.New(f("ip outside segment 0"))
	ErrChannelInvalid = errors.New(f("channel invalid"))

	// Instruction errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrDivideByZero  = errors.New(f("divide by zero"))

	// Arena errors
	ErrSegmentZero     = errors.New(f("segment 0 cannot be unmapped"))
	ErrSegmentInactive = errors.New(f("segment inactive"))
	ErrSegmentBounds   = errors.New(f("offset out of range"))
)

// ErrOpcode identifies the instruction that faulted.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x %v", uint32(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSegment identifies the segment access that failed.
type ErrSegment struct {
	Id     uint32
	Offset uint32
	Err    error
}

func (err *ErrSegment) Error() string {
	if errors.Is(err.Err, ErrSegmentBounds) {
		return f("segment 0x%x offset 0x%x %v", err.Id, err.Offset, err.Err)
	}
	return f("segment 0x%x %v", err.Id, err.Err)
}

func (err *ErrSegment) Unwrap() error {
	return err.Err
}
